package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bimmills/portal/auth"
	"github.com/bimmills/portal/config"
	"github.com/bimmills/portal/db/dbtest"
	"github.com/bimmills/portal/models"
	"github.com/bimmills/portal/service"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) OrderPlaced(o models.Order)       { m.Called(o) }
func (m *mockMailer) OrderCancelled(o models.Order)    { m.Called(o) }
func (m *mockMailer) EnquiryReceived(e models.Enquiry) { m.Called(e) }
func (m *mockMailer) SendCustom(_ context.Context, to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type testServer struct {
	t      *testing.T
	router http.Handler
	mailer *mockMailer
	tokens *auth.Tokens
}

func newTestServer(t *testing.T, enforceAdmin bool) *testServer {
	t.Helper()
	database := dbtest.Open(t)
	mailer := &mockMailer{}
	mailer.On("OrderPlaced", mock.Anything).Maybe()
	mailer.On("OrderCancelled", mock.Anything).Maybe()
	mailer.On("EnquiryReceived", mock.Anything).Maybe()

	tokens := auth.NewTokens("test-secret", time.Hour)
	h := New(Deps{
		DB:           database,
		Orders:       service.NewOrders(database, mailer),
		Invoices:     service.NewInvoices(database),
		Sales:        service.NewSales(database),
		Mailer:       mailer,
		Tokens:       tokens,
		EnforceAdmin: enforceAdmin,
	})
	return &testServer{
		t:      t,
		router: h.Router(config.ServerConfig{CorsOrigins: []string{"*"}}),
		mailer: mailer,
		tokens: tokens,
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (s *testServer) do(method, path string, body any, headers ...string) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

// decode unmarshals the data payload of env into v.
func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}
