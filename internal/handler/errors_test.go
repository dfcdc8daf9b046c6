package handler

import (
    "errors"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/service"
)

func TestRespondError(t *testing.T) {
    tests := []struct {
        err        error
        wantStatus int
    }{
        {service.ErrEventNotFound, http.StatusNotFound},
        {service.ErrRegistrationNotFound, http.StatusNotFound},
        {service.ErrForbidden, http.StatusForbidden},
        {service.ErrEventNotApproved, http.StatusConflict},
        {service.ErrAlreadyRegistered, http.StatusConflict},
        {service.ErrEventFull, http.StatusConflict},
        {service.ErrInvalidInput, http.StatusBadRequest},
        {service.ErrTransient, http.StatusServiceUnavailable},
        {errors.New("something else"), http.StatusInternalServerError},
        {fmt.Errorf("tx: %w", service.ErrEventFull), http.StatusConflict},
    }

    e := echo.New()
    for _, tt := range tests {
        t.Run(fmt.Sprintf("%v", tt.err), func(t *testing.T) {
            req := httptest.NewRequest(http.MethodGet, "/", nil)
            rec := httptest.NewRecorder()
            c := e.NewContext(req, rec)

            if err := respondError(c, tt.err); err != nil {
                t.Fatalf("respondError returned %v", err)
            }
            if rec.Code != tt.wantStatus {
                t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
            }
            if !strings.Contains(rec.Body.String(), `"error"`) {
                t.Errorf("body %q should carry an error field", rec.Body.String())
            }
        })
    }
}

func TestRespondErrorRetryAfter(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    if err := respondError(c, service.ErrTransient); err != nil {
        t.Fatalf("respondError returned %v", err)
    }
    if got := rec.Header().Get("Retry-After"); got == "" {
        t.Error("503 response should carry a Retry-After header")
    }
}

func TestGetUserID(t *testing.T) {
    e := echo.New()
    newCtx := func(v interface{}) echo.Context {
        c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
        if v != nil {
            c.Set("user_id", v)
        }
        return c
    }

    for name, v := range map[string]interface{}{
        "uint64":  uint64(7),
        "int":     int(7),
        "int64":   int64(7),
        "float64": float64(7),
        "string":  "7",
    } {
        t.Run(name, func(t *testing.T) {
            got, err := getUserID(newCtx(v))
            if err != nil || got != 7 {
                t.Errorf("getUserID(%T) = %d, %v; want 7, nil", v, got, err)
            }
        })
    }

    if _, err := getUserID(newCtx(nil)); err == nil {
        t.Error("missing user_id should error")
    }
    if _, err := getUserID(newCtx("not-a-number")); err == nil {
        t.Error("garbage user_id should error")
    }
}

func TestParseID(t *testing.T) {
    e := echo.New()
    newCtx := func(raw string) echo.Context {
        c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
        c.SetParamNames("id")
        c.SetParamValues(raw)
        return c
    }

    if id, err := parseID(newCtx("42"), "id"); err != nil || id != 42 {
        t.Errorf("parseID(42) = %d, %v", id, err)
    }
    for _, raw := range []string{"0", "-1", "abc", ""} {
        if _, err := parseID(newCtx(raw), "id"); err == nil {
            t.Errorf("parseID(%q) should fail", raw)
        }
    }
}
