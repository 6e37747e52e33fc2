package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hospital-ms/portal/internal/core/domain"
)

var testClientCfg = ClientConfig{Secret: "test-secret", Cookie: "hms_client"}

func runClient(t *testing.T, cfg ClientConfig, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := ClientContext(cfg)(func(c echo.Context) error {
		id, ok := domain.ClientIDFromContext(c.Request().Context())
		if !ok {
			t.Fatal("client id missing from request context")
		}
		if c.Get(ClientIDKey) != id {
			t.Fatal("client id missing from echo context")
		}
		seen = id
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return seen, rec
}

func TestClientContext_MintsCookie(t *testing.T) {
	id, rec := runClient(t, testClientCfg, httptest.NewRequest(http.MethodGet, "/", nil))
	if id == "" {
		t.Fatal("expected a client id")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "hms_client" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
}

func TestClientContext_ReusesValidCookie(t *testing.T) {
	first, rec := runClient(t, testClientCfg, httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	second, rec2 := runClient(t, testClientCfg, req)

	if first != second {
		t.Fatalf("expected same client id, got %q and %q", first, second)
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Fatal("valid cookie should not be reissued")
	}
}

func TestClientContext_RejectsForeignSignature(t *testing.T) {
	token, err := signClientToken("0b9d6f4e-1c1a-4a57-9a53-1e5e0c3f7a11", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "hms_client", Value: token})

	id, _ := runClient(t, testClientCfg, req)
	if id == "0b9d6f4e-1c1a-4a57-9a53-1e5e0c3f7a11" {
		t.Fatal("tampered cookie was accepted")
	}
}

func TestClientContext_RejectsExpiredToken(t *testing.T) {
	token, err := signClientToken("0b9d6f4e-1c1a-4a57-9a53-1e5e0c3f7a11", []byte("test-secret"), -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if parseClientToken(token, []byte("test-secret")) != "" {
		t.Fatal("expired token was accepted")
	}
}
