package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub/internal/model"
)

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	p, org, err := env.orgs.Me(env.ctx, "owner-1", "owner@acme.test")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, p.Role)
	require.NotNil(t, org)
	assert.Equal(t, "Demo Organization", org.Name)

	p, org, err = env.orgs.Me(env.ctx, "new-user", "new@acme.test")
	require.NoError(t, err)
	assert.Equal(t, "new@acme.test", p.Email)
	assert.Nil(t, org)
}

func TestInitializeOrganization(t *testing.T) {
	env := newTestEnv(t)

	org, err := env.orgs.InitializeOrganization(env.ctx, "founder", "founder@startup.test", "Startup", nil)
	require.NoError(t, err)
	assert.Equal(t, "Startup", org.Name)

	p, _, err := env.orgs.Me(env.ctx, "founder", "founder@startup.test")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, p.Role)

	feed, err := env.activity.List(env.ctx, org.ID, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "founder", feed[0].UserID)

	_, err = env.orgs.InitializeOrganization(env.ctx, "founder", "founder@startup.test", "Again", nil)
	assert.ErrorIs(t, err, ErrAlreadyInOrganization)

	var verr *ValidationError
	_, err = env.orgs.InitializeOrganization(env.ctx, "someone", "s@x.test", "   ", nil)
	assert.ErrorAs(t, err, &verr)
}

func TestGetSpending(t *testing.T) {
	env := newTestEnv(t)

	sp, err := env.orgs.GetSpending(env.ctx, env.orgID)
	require.NoError(t, err)
	assert.True(t, sp.TotalMonthlyCost.Equal(decimal.NewFromInt(200)))
	assert.True(t, sp.TotalYearlyCost.Equal(decimal.NewFromInt(2400)))
	assert.Equal(t, 2, sp.ActiveSubscriptions)
	assert.Equal(t, 3, sp.VendorCount)
}

func TestUpdateMemberRole(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddMember(env.orgID, model.Profile{ID: "admin-1", Email: "admin@acme.test", Role: model.RoleAdmin})
	env.store.AddMember(env.orgID, model.Profile{ID: "member-1", Email: "member@acme.test", Role: model.RoleMember})

	owner := Actor{UserID: "owner-1", OrganizationID: env.orgID, Role: model.RoleOwner}
	admin := Actor{UserID: "admin-1", OrganizationID: env.orgID, Role: model.RoleAdmin}
	member := Actor{UserID: "member-1", OrganizationID: env.orgID, Role: model.RoleMember}

	tests := []struct {
		name    string
		actor   Actor
		target  string
		role    model.Role
		wantErr error
	}{
		{"admin demotes member", admin, "member-1", model.RoleViewer, nil},
		{"member cannot manage team", member, "admin-1", model.RoleViewer, ErrForbidden},
		{"nobody changes own role", owner, "owner-1", model.RoleAdmin, ErrForbidden},
		{"admin cannot grant owner", admin, "member-1", model.RoleOwner, ErrForbidden},
		{"admin cannot demote owner", admin, "owner-1", model.RoleMember, ErrForbidden},
		{"unknown member", owner, "ghost", model.RoleMember, ErrMemberNotFound},
		{"owner promotes admin", owner, "admin-1", model.RoleOwner, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := env.orgs.UpdateMemberRole(env.ctx, tt.actor, tt.target, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, p.Role)
		})
	}

	var verr *ValidationError
	_, err := env.orgs.UpdateMemberRole(env.ctx, owner, "member-1", "superuser")
	assert.ErrorAs(t, err, &verr)

	members, err := env.orgs.ListMembers(env.ctx, env.orgID)
	require.NoError(t, err)
	assert.Len(t, members, 3)
}
