package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"vendorhub/internal/analytics"
	"vendorhub/internal/api/v1/dto"
	"vendorhub/internal/config"
	"vendorhub/internal/model"
	"vendorhub/internal/repository/memory"
	"vendorhub/internal/storage"
	"vendorhub/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testAPI struct {
	handler http.Handler
	store   *memory.Store
	orgID   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	cfg := &config.Config{
		Port:                     "8080",
		DataBackend:              config.BackendMemory,
		CORSOrigins:              "*",
		JWTSecret:                testSecret,
		DocumentMaxSizeMB:        1,
		DocumentUploadRatePerSec: 100,
		DocumentUploadBurst:      100,
		ActivityTopic:            "activity",
	}
	store := memory.New()
	orgID, err := memory.Seed(context.Background(), store, "owner-1", "owner@acme.test")
	require.NoError(t, err)
	store.AddMember(orgID, model.Profile{ID: "viewer-1", Email: "viewer@acme.test", Role: model.RoleViewer})

	backend := MemoryBackend(store, storage.NewMemoryStore("http://objects.test/objects"))
	return &testAPI{handler: NewHandler(cfg, backend, nil, zerolog.Nop()), store: store, orgID: orgID}
}

func token(t *testing.T, userID, email string) string {
	t.Helper()
	claims := util.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (a *testAPI) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, user, user+"@acme.test"))
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthzAndSwagger(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = api.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "VendorHub API")
	assert.Contains(t, rec.Body.String(), "/subscriptions/renewal-alerts")
}

type swaggerParam struct {
	Name string   `json:"name"`
	In   string   `json:"in"`
	Enum []string `json:"enum"`
}

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Parameters []swaggerParam `json:"parameters"`
	} `json:"paths"`
	Definitions map[string]struct {
		Properties map[string]json.RawMessage `json:"properties"`
	} `json:"definitions"`
}

func TestSwaggerDescribesSubscriptionFilters(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decode[swaggerDoc](t, rec)

	params := map[string]swaggerParam{}
	for _, p := range doc.Paths["/subscriptions"]["get"].Parameters {
		assert.Equal(t, "query", p.In)
		params[p.Name] = p
	}
	assert.ElementsMatch(t,
		[]string{"vendor", "team", "status", "billing_cycle", "renewal_period", "min_cost", "max_cost"},
		keys(params))

	enums := map[string][]string{
		"status":         toStrings(model.SubscriptionStatuses),
		"billing_cycle":  toStrings(model.BillingCycles),
		"renewal_period": toStrings(analytics.RenewalPeriods),
	}
	for name, want := range enums {
		assert.ElementsMatch(t, want, params[name].Enum, name)
		for _, v := range params[name].Enum {
			_, err := analytics.ParseFilters(url.Values{name: {v}})
			assert.NoError(t, err, "%s=%s", name, v)
		}
	}

	spending := doc.Definitions["service.Spending"].Properties
	for _, field := range []string{"total_monthly_cost", "total_yearly_cost", "active_subscriptions", "vendor_count"} {
		assert.Contains(t, spending, field)
	}
	for _, path := range []string{"/subscriptions/{subscriptionId}/renewals", "/documents/{documentId}/download", "/activity"} {
		assert.Contains(t, doc.Paths, path)
	}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func toStrings[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

func TestAuthRequired(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/v1/subscriptions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOnboardingFlow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/me", "newcomer", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Nil(t, me["organization"])

	rec = api.do(t, http.MethodGet, "/v1/vendors", "newcomer", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPost, "/v1/organizations", "newcomer", dto.OrganizationCreateDTO{Name: "Newco"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/v1/organizations", "newcomer", dto.OrganizationCreateDTO{Name: "Again"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodGet, "/v1/vendors", "newcomer", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]model.VendorSummary](t, rec))
}

func TestListAndFilterSubscriptions(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/subscriptions", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	subs := decode[[]dto.SubscriptionResponseDTO](t, rec)
	assert.Len(t, subs, 3)

	rec = api.do(t, http.MethodGet, "/v1/subscriptions?status=trial", "viewer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	subs = decode[[]dto.SubscriptionResponseDTO](t, rec)
	require.Len(t, subs, 1)
	assert.Equal(t, "Figma Professional", subs[0].Name)

	rec = api.do(t, http.MethodGet, "/v1/subscriptions?status=bogus", "owner-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/subscriptions/stats", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[map[string]any](t, rec)
	assert.EqualValues(t, 3, stats["total_subscriptions"])
	assert.Equal(t, "200", stats["total_monthly_cost"])

	rec = api.do(t, http.MethodGet, "/v1/subscriptions/renewal-alerts", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	alerts := decode[[]dto.RenewalAlertDTO](t, rec)
	require.Len(t, alerts, 3)
	assert.Equal(t, "Slack Pro", alerts[0].SubscriptionName)
	assert.Equal(t, "urgent", alerts[0].Urgency)

	rec = api.do(t, http.MethodGet, "/v1/organization/spending", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	spending := decode[map[string]any](t, rec)
	assert.EqualValues(t, 3, spending["vendor_count"])

	rec = api.do(t, http.MethodGet, "/v1/subscriptions/cost-breakdown/export", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentTypeForTest, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cost-breakdown-")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

const xlsxContentTypeForTest = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func TestSubscriptionLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/vendors", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	vendors := decode[[]model.VendorSummary](t, rec)
	require.NotEmpty(t, vendors)
	vendorID := vendors[0].ID

	body := map[string]any{
		"vendor_id":     vendorID,
		"name":          "Slack Enterprise Grid",
		"cost":          "1200",
		"billing_cycle": "yearly",
		"start_date":    "2025-01-31",
		"user_seats":    40,
	}
	rec = api.do(t, http.MethodPost, "/v1/subscriptions", "viewer-1", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPost, "/v1/subscriptions", "owner-1", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.SubscriptionResponseDTO](t, rec)
	require.NotNil(t, created.NextRenewalDate)
	assert.Equal(t, "2026-01-31", *created.NextRenewalDate)
	assert.Equal(t, "USD", created.Currency)
	assert.True(t, created.AutoRenew)
	assert.Equal(t, "100", created.MonthlyCost.String())
	assert.Equal(t, "30", created.CostPerSeat.String())

	rec = api.do(t, http.MethodPost, "/v1/subscriptions/"+created.ID+"/cancel", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cancelled := decode[dto.SubscriptionResponseDTO](t, rec)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.False(t, cancelled.AutoRenew)

	rec = api.do(t, http.MethodPost, "/v1/subscriptions/"+created.ID+"/reactivate", "owner-1", map[string]any{"next_renewal_date": "2027-01-31"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "active", decode[dto.SubscriptionResponseDTO](t, rec).Status)

	rec = api.do(t, http.MethodPost, "/v1/subscriptions/"+created.ID+"/renew", "owner-1", map[string]any{"new_cost": "1500"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	renewed := decode[dto.SubscriptionResponseDTO](t, rec)
	assert.Equal(t, "2028-01-31", *renewed.NextRenewalDate)

	rec = api.do(t, http.MethodGet, "/v1/subscriptions/"+created.ID+"/renewals", "viewer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Renewal](t, rec), 1)

	rec = api.do(t, http.MethodPatch, "/v1/subscriptions/bulk", "owner-1", map[string]any{
		"ids":     []string{created.ID},
		"updates": map[string]any{"team": "Platform"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, decode[dto.BulkUpdateResponseDTO](t, rec).Updated)

	rec = api.do(t, http.MethodDelete, "/v1/subscriptions/"+created.ID, "owner-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/v1/subscriptions/"+created.ID, "owner-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/v1/activity", "viewer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]model.ActivityLog](t, rec))
}

func TestCreateSubscriptionValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/subscriptions", "owner-1", map[string]any{
		"vendor_id":     "missing",
		"name":          "Ghost",
		"cost":          "10",
		"billing_cycle": "weekly",
		"start_date":    "2025-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/v1/subscriptions", "owner-1", map[string]any{
		"vendor_id":     "missing",
		"name":          "Ghost",
		"cost":          "10",
		"billing_cycle": "monthly",
		"start_date":    "2025-01-01",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteVendorWithSubscriptionsConflicts(t *testing.T) {
	api := newTestAPI(t)
	vendors := decode[[]model.VendorSummary](t, api.do(t, http.MethodGet, "/v1/vendors", "owner-1", nil))
	require.NotEmpty(t, vendors)

	rec := api.do(t, http.MethodDelete, "/v1/vendors/"+vendors[0].ID, "owner-1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodGet, "/v1/vendors/"+vendors[0].ID+"/subscriptions", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]dto.SubscriptionResponseDTO](t, rec), 1)
}

func TestTeamRoles(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPut, "/v1/team/members/owner-1/role", "viewer-1", dto.RoleUpdateDTO{Role: "viewer"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPut, "/v1/team/members/viewer-1/role", "owner-1", dto.RoleUpdateDTO{Role: "member"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.RoleMember, decode[model.Profile](t, rec).Role)

	rec = api.do(t, http.MethodGet, "/v1/team/members", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Profile](t, rec), 2)
}

func uploadRequest(t *testing.T, user, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("name", "Master services agreement"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token(t, user, user+"@acme.test"))
	return req
}

func TestDocumentFlow(t *testing.T) {
	api := newTestAPI(t)

	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, uploadRequest(t, "owner-1", "msa.pdf", pdf))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	doc := decode[model.Document](t, rec)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.Equal(t, "Master services agreement", doc.Name)
	assert.True(t, strings.HasPrefix(doc.FilePath, api.orgID+"/vendor-contracts/"))

	rec = api.do(t, http.MethodGet, "/v1/documents", "viewer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Document](t, rec), 1)

	rec = api.do(t, http.MethodGet, "/v1/documents/"+doc.ID+"/download", "viewer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	link := decode[dto.DownloadURLResponseDTO](t, rec)
	assert.True(t, strings.HasPrefix(link.URL, "http://objects.test/objects/"+api.orgID+"/vendor-contracts/"))

	u, err := url.Parse(link.URL)
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	api.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, u.RequestURI(), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, pdf, rec.Body.Bytes())

	tampered := *u
	q := tampered.Query()
	q.Set("signature", strings.Repeat("0", 64))
	tampered.RawQuery = q.Encode()
	rec = httptest.NewRecorder()
	api.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tampered.RequestURI(), nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodDelete, "/v1/documents/"+doc.ID, "viewer-1", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodDelete, "/v1/documents/"+doc.ID, "owner-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/v1/documents/"+doc.ID+"/download", "owner-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	api.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, u.RequestURI(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocumentUploadRejections(t *testing.T) {
	api := newTestAPI(t)

	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, uploadRequest(t, "owner-1", "tool.bin", []byte("\x7fELF\x02\x01\x01\x00\x00\x00\x00\x00\x00\x00\x00\x00")))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = httptest.NewRecorder()
	big := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), 1<<20)...)
	api.handler.ServeHTTP(rec, uploadRequest(t, "owner-1", "big.pdf", big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
