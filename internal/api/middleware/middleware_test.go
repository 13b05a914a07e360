package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"talentflow/internal/api/middleware"
	"talentflow/internal/tenant"
	"talentflow/pkg/utils"
)

func TestAuthenticatorVerify(t *testing.T) {
	authn := middleware.NewAuthenticator("secret", "talentflow")
	sign := func(t *testing.T, method jwt.SigningMethod, key interface{}, claims middleware.Claims) string {
		t.Helper()
		raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatal(err)
		}
		return raw
	}
	valid := func() middleware.Claims {
		return middleware.Claims{
			Organization: "org-1",
			Role:         "hr",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				Issuer:    "talentflow",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
	}

	t.Run("it accepts a well-formed token", func(t *testing.T) {
		scope, err := authn.Verify(sign(t, jwt.SigningMethodHS256, []byte("secret"), valid()))
		if err != nil {
			t.Fatal(err)
		}
		want := tenant.Scope{OrganizationID: "org-1", UserID: "user-1", Role: tenant.RoleHR}
		if scope != want {
			t.Errorf("scope = %+v, want %+v", scope, want)
		}
	})

	for name, mutate := range map[string]func(*middleware.Claims){
		"without organization": func(c *middleware.Claims) { c.Organization = "" },
		"without subject":      func(c *middleware.Claims) { c.Subject = "" },
		"with unknown role":    func(c *middleware.Claims) { c.Role = "OWNER" },
		"from another issuer":  func(c *middleware.Claims) { c.Issuer = "elsewhere" },
		"without expiry":       func(c *middleware.Claims) { c.ExpiresAt = nil },
	} {
		t.Run("it rejects a token "+name, func(t *testing.T) {
			claims := valid()
			mutate(&claims)
			if _, err := authn.Verify(sign(t, jwt.SigningMethodHS256, []byte("secret"), claims)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	t.Run("it rejects other signing methods", func(t *testing.T) {
		raw := sign(t, jwt.SigningMethodHS512, []byte("secret"), valid())
		if _, err := authn.Verify(raw); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestRequireRole(t *testing.T) {
	guard := middleware.RequireRole(tenant.RoleAdmin, tenant.RoleHR)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	for name, testcase := range map[string]struct {
		when *tenant.Scope
		then int
	}{
		"no scope": {when: nil, then: http.StatusUnauthorized},
		"employee": {when: &tenant.Scope{OrganizationID: "o", UserID: "u", Role: tenant.RoleEmployee}, then: http.StatusForbidden},
		"manager":  {when: &tenant.Scope{OrganizationID: "o", UserID: "u", Role: tenant.RoleManager}, then: http.StatusForbidden},
		"hr":       {when: &tenant.Scope{OrganizationID: "o", UserID: "u", Role: tenant.RoleHR}, then: http.StatusNoContent},
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if testcase.when != nil {
				req = req.WithContext(tenant.WithScope(req.Context(), *testcase.when))
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := guard(ok)(c)
			if testcase.then == http.StatusNoContent {
				if err != nil || rec.Code != http.StatusNoContent {
					t.Errorf("err = %v, status = %d", err, rec.Code)
				}
				return
			}
			if !utils.IsCode(err, testcase.then) {
				t.Errorf("err = %v, want code %d", err, testcase.then)
			}
		})
	}
}

func TestOrganizationLimiter(t *testing.T) {
	limiter := middleware.NewOrganizationLimiter(0.001, 2)

	for i := 0; i < 2; i++ {
		if !limiter.Allow("org-a") {
			t.Fatalf("request %d of the burst was refused", i+1)
		}
	}
	if limiter.Allow("org-a") {
		t.Error("burst exceeded but request allowed")
	}
	if !limiter.Allow("org-b") {
		t.Error("one organization exhausted another's budget")
	}

	t.Run("the middleware answers 429", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(tenant.WithScope(req.Context(), tenant.Scope{OrganizationID: "org-a"}))
		c := e.NewContext(req, httptest.NewRecorder())

		err := limiter.Middleware()(func(c echo.Context) error { return nil })(c)
		if !utils.IsCode(err, http.StatusTooManyRequests) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestRequestValidation(t *testing.T) {
	mw := middleware.RequestValidation(16)
	next := func(c echo.Context) error { return c.String(http.StatusOK, middleware.RequestID(c)) }

	t.Run("an incoming request id is kept", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "abc")
		rec := httptest.NewRecorder()
		if err := mw(next)(e.NewContext(req, rec)); err != nil {
			t.Fatal(err)
		}
		if rec.Body.String() != "abc" || rec.Header().Get(echo.HeaderXRequestID) != "abc" {
			t.Errorf("request id = %q / %q", rec.Body.String(), rec.Header().Get(echo.HeaderXRequestID))
		}
	})

	t.Run("oversized bodies are refused", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.ContentLength = 17
		rec := httptest.NewRecorder()
		if err := mw(next)(e.NewContext(req, rec)); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d", rec.Code)
		}
	})
}
