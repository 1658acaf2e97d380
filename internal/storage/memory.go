package storage

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"
)

var (
	// ErrLinkExpired is returned for a download link past its expiry.
	ErrLinkExpired = errors.New("download link expired")
	// ErrLinkInvalid is returned for a download link with a bad signature.
	ErrLinkInvalid = errors.New("download link signature invalid")
)

// MemoryStore keeps objects in process. Presigned URLs are HMAC-signed
// links under baseURL, redeemed with Open.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
	secret  []byte
	now     func() time.Time
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryStore returns an empty store whose links start with baseURL.
func NewMemoryStore(baseURL string) *MemoryStore {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic(fmt.Sprintf("storage: read random signing key: %v", err))
	}
	return &MemoryStore{objects: map[string]memoryObject{}, baseURL: baseURL, secret: secret, now: time.Now}
}

func (m *MemoryStore) sign(key, expires string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(key + "\n" + expires))
	return hex.EncodeToString(mac.Sum(nil))
}

func (m *MemoryStore) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read object %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return fmt.Errorf("failed to delete object %s: %w", key, ErrObjectNotFound)
	}
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) PresignGet(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.objects[key]; !ok {
		return "", fmt.Errorf("failed to generate presigned URL: %w", ErrObjectNotFound)
	}
	expires := m.now().Add(PresignTTL).UTC().Format(time.RFC3339)
	q := url.Values{}
	q.Set("expires", expires)
	q.Set("signature", m.sign(key, expires))
	return m.baseURL + "/" + (&url.URL{Path: key}).EscapedPath() + "?" + q.Encode(), nil
}

// Open redeems a link produced by PresignGet. expires and signature are the
// link's query parameters.
func (m *MemoryStore) Open(key, expires, signature string) ([]byte, string, error) {
	if !hmac.Equal([]byte(signature), []byte(m.sign(key, expires))) {
		return nil, "", ErrLinkInvalid
	}
	at, err := time.Parse(time.RFC3339, expires)
	if err != nil {
		return nil, "", ErrLinkInvalid
	}
	if m.now().After(at) {
		return nil, "", ErrLinkExpired
	}
	data, contentType, ok := m.Get(key)
	if !ok {
		return nil, "", ErrObjectNotFound
	}
	return data, contentType, nil
}

// Get returns a stored object's bytes.
func (m *MemoryStore) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	return o.data, o.contentType, ok
}

// Len reports how many objects are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
