package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"fundboard/internal/auth"
	"fundboard/internal/core"
	"fundboard/internal/gateway"
	"fundboard/internal/session"
	"fundboard/internal/views"
)

const (
	testStats = `{"success":true,"data":{"totalFunds":3,"totalAllocated":2500000,"totalReleased":1250.5,
		"byStatus":[{"_id":"Approved","count":2},{"_id":"Pending","count":1}],
		"byCategory":[{"_id":"Education","total":2000000},{"_id":"Healthcare","total":500000}]}}`
	testFunds = `{"success":true,"data":[{"_id":"f1","projectName":"School","description":"New roof","category":"Education",
		"status":"Approved","totalAmount":1500000,"beneficiary":{"name":"Ann","organization":"Edu Org"},
		"createdAt":"2024-03-05T10:20:30.000Z","approvals":[{"by":"x"}]}]}`
	testFund = `{"success":true,"data":{"_id":"f1","projectName":"School","description":"New roof",
		"category":"Education","status":"Released","totalAmount":1500000,"releasedAmount":500000,
		"beneficiary":{"name":"Ann","email":"ann@edu.org","organization":"Edu Org","walletAddress":"0xbeef"},
		"allocatedBy":{"name":"A","email":"a@b.com","organization":"Org"},
		"approvals":[{"authority":{"name":"Auth","email":"auth@gov.org"},"approvedAt":"2024-03-06T00:00:00.000Z","remarks":"Looks good"}],
		"milestones":[],"transactionHash":"0xfeed","blockchainStatus":"confirmed","createdAt":"2024-03-05T10:20:30.000Z"}}`
	testUtilization = `{"success":true,"data":{"totalFunds":1,"totalAllocated":1500000,"totalReleased":500000,
		"totalPending":1000000,"byCategory":{"Education":{"count":1,"allocated":1500000,"released":500000}},
		"byStatus":{"Released":1},"funds":[]}}`
	testAudit = `{"success":true,"data":{"totalTransactions":1,"totalAmount":500000,
		"byType":{"release":{"count":1,"amount":500000}},"byStatus":{"confirmed":1},
		"transactions":[{"fundId":1,"fund":{"_id":"f1","projectName":"School","category":"Education"},
		"transactionHash":"0xfeed","amount":500000,"type":"release","status":"confirmed","timestamp":"2024-03-07T00:00:00.000Z"}]}}`
)

// fakeAPI imitates the backend's envelope responses.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string
	stats string
	funds string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.RequestURI(), "/api")
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+path)
	stats, funds := f.stats, f.funds
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	authorized := r.Header.Get("Authorization") == "Bearer T"
	switch {
	case path == "/auth/login":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] == "a@b.com" && body["password"] == "x" {
			_, _ = w.Write([]byte(`{"success":true,"data":{"token":"T","user":{"name":"A","email":"a@b.com","role":"admin","organization":"Org"}}}`))
			return
		}
		if body["email"] == "ben@b.com" && body["password"] == "x" {
			_, _ = w.Write([]byte(`{"success":true,"data":{"token":"T","user":{"name":"Ben","email":"ben@b.com","role":"beneficiary","organization":"Edu Org"}}}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	case path == "/auth/register":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		user, _ := json.Marshal(map[string]string{"name": body["name"], "email": body["email"], "role": body["role"]})
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"T","user":` + string(user) + `}}`))
	case !authorized:
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Not authorized"}`))
	case path == "/funds/stats/overview":
		_, _ = w.Write([]byte(stats))
	case path == "/funds/f1":
		_, _ = w.Write([]byte(testFund))
	case path == "/funds/missing":
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Fund not found"}`))
	case path == "/reports/utilization":
		_, _ = w.Write([]byte(testUtilization))
	case path == "/reports/audit":
		_, _ = w.Write([]byte(testAudit))
	case strings.HasPrefix(path, "/funds"):
		_, _ = w.Write([]byte(funds))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Route not found"}`))
	}
}

func (f *fakeAPI) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestServer(t *testing.T, apiURL string) *Server {
	t.Helper()
	return newTestServerWithStore(t, apiURL, session.DefaultStoreConfig())
}

func newTestServerWithStore(t *testing.T, apiURL string, storeCfg session.StoreConfig) *Server {
	t.Helper()
	gw := gateway.New(gateway.Config{BaseURL: apiURL})
	store := session.NewStore(storeCfg)
	srv := NewServer(":0", Deps{
		Gateway:  gw,
		Sessions: store,
		Auth:     auth.NewFlow(gw, nil, nil),
		Views:    views.New(gw, nil),
		Cookie:   CookieConfig{Name: "fb_test"},
	})
	t.Cleanup(store.Close)
	if srv.templates == nil {
		t.Fatal("templates failed to parse")
	}
	return srv
}

func newBackedServer(t *testing.T) (*Server, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{stats: testStats, funds: testFunds}
	backend := httptest.NewServer(api)
	t.Cleanup(backend.Close)
	return newTestServer(t, backend.URL+"/api"), api
}

// browser keeps cookies between requests the way a real client would.
type browser struct {
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(srv *Server) *browser {
	return &browser{h: srv.Handler, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, target string, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	b.h.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rr
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, target, nil, nil)
}

func (b *browser) login(t *testing.T) {
	t.Helper()
	rr := b.do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {"x"}}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, body = %s", rr.Code, rr.Body.String())
	}
}

func mustContain(t *testing.T, body string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(body, p) {
			t.Errorf("body missing %q", p)
		}
	}
}

func TestUnauthenticatedOnlySeesLogin(t *testing.T) {
	srv, api := newBackedServer(t)
	b := newBrowser(srv)

	for _, target := range []string{"/", "/?page=Dashboard", "/?page=Funds", "/?page=Profile", "/?page=Fund&id=f1", "/?page=Reports"} {
		rr := b.get(target)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", target, rr.Code)
		}
		mustContain(t, rr.Body.String(), `action="/login"`)
		if strings.Contains(rr.Body.String(), `aria-label="Navigation"`) {
			t.Errorf("%s: navigation shown without a session", target)
		}
	}
	if calls := api.seen(); len(calls) != 0 {
		t.Errorf("backend called while unauthenticated: %v", calls)
	}
	if len(b.cookies) != 0 {
		t.Errorf("anonymous visit issued cookies: %v", b.cookies)
	}
	if n := srv.sessions.Len(); n != 0 {
		t.Errorf("anonymous visits stored %d sessions", n)
	}
}

func TestLoginValidation(t *testing.T) {
	srv, api := newBackedServer(t)
	b := newBrowser(srv)

	rr := b.do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {""}}, nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rr.Code)
	}
	mustContain(t, rr.Body.String(), "Please enter both email and password", `value="a@b.com"`)
	if calls := api.seen(); len(calls) != 0 {
		t.Errorf("backend called: %v", calls)
	}
}

func TestLoginFlow(t *testing.T) {
	srv, api := newBackedServer(t)
	b := newBrowser(srv)

	b.login(t)
	c, ok := b.cookies["fb_test"]
	if !ok || !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Fatalf("session cookie = %+v", c)
	}

	rr := b.get("/")
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rr.Code)
	}
	body := rr.Body.String()
	mustContain(t, body,
		"Login Successful!",
		"Welcome, A",
		"Role: ADMIN | Organization: Org",
		"Total Funds", "$2,500,000.00", "$1,250.50",
		"Distribution by Status", "conic-gradient",
		"Allocation by Category", "width: 100%", "width: 25%",
		`aria-current="page">Dashboard`,
	)

	// Flash is shown once.
	if strings.Contains(b.get("/").Body.String(), "Login Successful!") {
		t.Error("flash notice repeated")
	}

	calls := api.seen()
	if calls[0] != "POST /auth/login" || calls[1] != "GET /funds/stats/overview" {
		t.Errorf("calls = %v", calls)
	}
}

func TestLoginIssuesNewSessionID(t *testing.T) {
	srv, _ := newBackedServer(t)

	// A planted identifier must not become a signed-in session.
	b := newBrowser(srv)
	b.cookies["fb_test"] = &http.Cookie{Name: "fb_test", Value: "planted"}
	b.login(t)
	if got := b.cookies["fb_test"].Value; got == "planted" {
		t.Fatal("login kept the planted session ID")
	}
	other := newBrowser(srv)
	other.cookies["fb_test"] = &http.Cookie{Name: "fb_test", Value: "planted"}
	mustContain(t, other.get("/").Body.String(), `action="/login"`)

	// Signing in again on a stored session rotates it too.
	first := b.cookies["fb_test"].Value
	b.login(t)
	second := b.cookies["fb_test"].Value
	if second == first {
		t.Fatal("second login kept the session ID")
	}
	stale := newBrowser(srv)
	stale.cookies["fb_test"] = &http.Cookie{Name: "fb_test", Value: first}
	mustContain(t, stale.get("/").Body.String(), `action="/login"`)
	mustContain(t, b.get("/").Body.String(), "Welcome, A")

	if n := srv.sessions.Len(); n != 1 {
		t.Errorf("stored sessions = %d, want 1", n)
	}
}

func TestAnonymousTrafficKeepsSignedInSessions(t *testing.T) {
	api := &fakeAPI{stats: testStats, funds: testFunds}
	backend := httptest.NewServer(api)
	t.Cleanup(backend.Close)
	cfg := session.DefaultStoreConfig()
	cfg.MaxSessions = 3
	srv := newTestServerWithStore(t, backend.URL+"/api", cfg)

	b := newBrowser(srv)
	b.login(t)
	for i := 0; i < 50; i++ {
		newBrowser(srv).get("/")
		newBrowser(srv).do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {""}}, nil)
	}
	mustContain(t, b.get("/?page=Profile").Body.String(), "My Profile")
	if n := srv.sessions.Len(); n != 1 {
		t.Errorf("stored sessions = %d, want 1", n)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		srv, _ := newBackedServer(t)
		b := newBrowser(srv)
		rr := b.do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {"wrong"}}, nil)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rr.Code)
		}
		mustContain(t, rr.Body.String(), "Login Failed: Invalid credentials")
		if !strings.Contains(b.get("/").Body.String(), `action="/login"`) {
			t.Error("session should remain unauthenticated")
		}
	})

	t.Run("backend down", func(t *testing.T) {
		srv := newTestServer(t, "http://127.0.0.1:1/api")
		b := newBrowser(srv)
		rr := b.do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {"x"}}, nil)
		if rr.Code != http.StatusBadGateway {
			t.Fatalf("status = %d", rr.Code)
		}
		mustContain(t, rr.Body.String(), "API Error: ", "Login Failed: Connection refused")
	})
}

func TestHTMXLoginRedirect(t *testing.T) {
	srv, _ := newBackedServer(t)
	b := newBrowser(srv)

	rr := b.do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {"x"}},
		map[string]string{"HX-Request": "true"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("HX-Redirect"); got != "/" {
		t.Errorf("HX-Redirect = %q", got)
	}
	if trig := rr.Header().Get("HX-Trigger"); !strings.Contains(trig, `"authenticated":true`) {
		t.Errorf("HX-Trigger = %q", trig)
	}
}

func TestFundsPage(t *testing.T) {
	srv, api := newBackedServer(t)
	b := newBrowser(srv)
	b.login(t)

	rr := b.get("/?page=Funds&status=Approved&category=All")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	mustContain(t, rr.Body.String(),
		"Fund Allocations",
		"School (Approved) - $1,500,000",
		"Ann (Edu Org)",
		"2024-03-05",
		"<strong>Approvals:</strong> 1",
		`<option value="Approved" selected>`,
		`<a href="/?page=Fund&amp;id=f1">View details</a>`,
	)
	calls := api.seen()
	if last := calls[len(calls)-1]; last != "GET /funds?status=Approved" {
		t.Errorf("last call = %q", last)
	}
}

func TestFundPage(t *testing.T) {
	srv, api := newBackedServer(t)
	b := newBrowser(srv)
	b.login(t)

	rr := b.get("/?page=Fund&id=f1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	mustContain(t, rr.Body.String(),
		"<title>School (Released) - Fund Allocation Tracker</title>",
		"$1,500,000.00", "$500,000.00", "$1,000,000.00",
		"ann@edu.org", "0xbeef", "A (Org)", "0xfeed",
		"Auth", "2024-03-06", "Looks good",
		"No milestones defined",
		`aria-current="page">Funds`,
	)

	mustContain(t, b.get("/?page=Fund&id=missing").Body.String(), "Fund is unavailable: Fund not found")

	before := len(api.seen())
	for _, id := range []string{"", "..", "f1/../../auth/me", "f1%3Fx"} {
		body := b.get("/?page=Fund&id=" + url.QueryEscape(id)).Body.String()
		mustContain(t, body, "notice--warning", "Select a fund from the Funds page")
	}
	if calls := api.seen(); len(calls) != before {
		t.Errorf("malformed ids reached the backend: %v", calls[before:])
	}
}

func TestReportsPage(t *testing.T) {
	srv, api := newBackedServer(t)
	admin := newBrowser(srv)
	admin.login(t)

	body := admin.get("/?page=Reports").Body.String()
	mustContain(t, body,
		`aria-current="page">Reports`,
		"Fund Utilization", "Total Pending", "$1,000,000.00",
		"<td>Education</td><td>1</td><td>$1,500,000.00</td><td>$500,000.00</td>",
		"Released: 1",
		"Transaction Audit", "<td>release</td><td>1</td><td>$500,000.00</td>",
		"confirmed: 1", "<td>2024-03-07</td><td>School</td>", "<code>0xfeed</code>",
	)

	ben := newBrowser(srv)
	rr := ben.do(http.MethodPost, "/login", url.Values{"email": {"ben@b.com"}, "password": {"x"}}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d", rr.Code)
	}
	ben.get("/")
	before := len(api.seen())
	body = ben.get("/?page=Reports").Body.String()
	mustContain(t, body, "Welcome, Ben", "Reports are available to admins and auditors only")
	if strings.Contains(body, `href="/?page=Reports"`) {
		t.Error("Reports offered in the menu to a beneficiary")
	}
	for _, c := range api.seen()[before:] {
		if strings.Contains(c, "/reports/") {
			t.Errorf("beneficiary request reached %q", c)
		}
	}
}

func TestFundsEmptyAndUnavailable(t *testing.T) {
	srv, api := newBackedServer(t)
	b := newBrowser(srv)
	b.login(t)

	api.mu.Lock()
	api.funds = `{"success":true,"data":[]}`
	api.mu.Unlock()
	mustContain(t, b.get("/?page=Funds").Body.String(), "No funds found matching criteria")

	api.mu.Lock()
	api.funds = `oops`
	api.mu.Unlock()
	body := b.get("/?page=Funds").Body.String()
	mustContain(t, body, "API Error: ", "Funds are unavailable")
	if strings.Contains(body, "No funds found") {
		t.Error("unavailable must not look like an empty result")
	}
}

func TestDashboardStates(t *testing.T) {
	srv, api := newBackedServer(t)
	b := newBrowser(srv)
	b.login(t)

	api.mu.Lock()
	api.stats = `{"success":true,"data":{"totalFunds":1,"totalAllocated":10,"totalReleased":0,
		"byStatus":[],"byCategory":[{"_id":"Agriculture","total":10}]}}`
	api.mu.Unlock()
	body := b.get("/?page=Dashboard").Body.String()
	mustContain(t, body, "No status data available", "Allocation by Category", "Agriculture")

	api.mu.Lock()
	api.stats = `{"success":true,"data":{"totalFunds":0,"totalAllocated":0,"totalReleased":0,"byStatus":[],"byCategory":[]}}`
	api.mu.Unlock()
	mustContain(t, b.get("/").Body.String(), "No status data available", "No category data available")

	api.mu.Lock()
	api.stats = `<html>`
	api.mu.Unlock()
	body = b.get("/").Body.String()
	mustContain(t, body, "Welcome, A", "API Error: ", "Statistics are unavailable")
	if strings.Contains(body, "Total Funds") {
		t.Error("metrics rendered without data")
	}
}

func TestProfileAndLogout(t *testing.T) {
	srv, _ := newBackedServer(t)
	b := newBrowser(srv)
	b.login(t)

	rr := b.get("/?page=Profile")
	mustContain(t, rr.Body.String(),
		"My Profile",
		`name="name" value="A" disabled`,
		`name="role" value="admin" disabled`,
		`name="walletAddress" value="" disabled`,
		`action="/logout"`,
	)

	sid := b.cookies["fb_test"].Value
	rr = b.do(http.MethodPost, "/logout", url.Values{}, nil)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Fatalf("logout = %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if _, ok := b.cookies["fb_test"]; ok {
		t.Error("logout should expire the session cookie")
	}
	if _, ok := srv.sessions.Lookup(sid); ok {
		t.Error("logout should forget the session")
	}
	mustContain(t, b.get("/?page=Profile").Body.String(), `action="/login"`)
}

func TestRegister(t *testing.T) {
	srv, api := newBackedServer(t)
	b := newBrowser(srv)

	rr := b.get("/register")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	mustContain(t, rr.Body.String(), `action="/register"`, `<option value="beneficiary" selected>`, `<option value="auditor">`)

	rr = b.do(http.MethodPost, "/register", url.Values{"name": {"B"}, "email": {"b@c.com"}, "password": {"pw"}, "role": {"bogus"}}, nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid role status = %d", rr.Code)
	}
	mustContain(t, rr.Body.String(), "Registration Failed", `value="b@c.com"`)

	rr = b.do(http.MethodPost, "/register", url.Values{"name": {"B"}, "email": {"b@c.com"}, "password": {"pw"}, "role": {"auditor"}}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("register status = %d", rr.Code)
	}
	mustContain(t, b.get("/").Body.String(), "Registration Successful!", "Welcome, B", "Role: AUDITOR")

	if rr := b.get("/register"); rr.Code != http.StatusSeeOther {
		t.Errorf("signed-in /register status = %d", rr.Code)
	}
	for _, c := range api.seen() {
		if c == "POST /auth/register" {
			return
		}
	}
	t.Error("register endpoint not called")
}

func TestMethodsAndNotFound(t *testing.T) {
	srv, _ := newBackedServer(t)
	b := newBrowser(srv)

	tests := []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/login", http.StatusMethodNotAllowed},
		{http.MethodGet, "/logout", http.StatusMethodNotAllowed},
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/register", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodGet, "/static/app.css", http.StatusOK},
	}
	for _, tt := range tests {
		rr := b.do(tt.method, tt.target, nil, nil)
		if rr.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.target, rr.Code, tt.want)
		}
	}
}

func TestMiddlewareHeaders(t *testing.T) {
	srv, _ := newBackedServer(t)
	rr := newBrowser(srv).get("/")
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing security headers")
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHealthReadyMetrics(t *testing.T) {
	srv, _ := newBackedServer(t)
	b := newBrowser(srv)

	if rr := b.get("/healthz"); rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("healthz = %d %s", rr.Code, rr.Body.String())
	}
	if rr := b.get("/readyz"); rr.Code != http.StatusOK {
		t.Errorf("readyz = %d %s", rr.Code, rr.Body.String())
	}

	b.login(t)
	b.do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {"bad"}}, nil)
	body := b.get("/metrics").Body.String()
	mustContain(t, body, "http_requests_total", "logins_total 1", "login_failures_total 1", "sessions_active 1")

	down := newTestServer(t, "http://127.0.0.1:1/api")
	if rr := newBrowser(down).get("/readyz"); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz with backend down = %d", rr.Code)
	}
}

func TestRoute(t *testing.T) {
	anon := session.Snapshot{}
	signed := session.Snapshot{Credential: "T"}
	auditor := session.Snapshot{Credential: "T", User: &core.UserProfile{Role: "auditor"}}
	admin := session.Snapshot{Credential: "T", User: &core.UserProfile{Role: "admin"}}
	tests := []struct {
		name      string
		snap      session.Snapshot
		requested string
		want      Page
	}{
		{"anonymous default", anon, "", PageLogin},
		{"anonymous cannot reach dashboard", anon, "Dashboard", PageLogin},
		{"anonymous register", anon, "Register", PageRegister},
		{"signed default", signed, "", PageDashboard},
		{"signed funds", signed, "Funds", PageFunds},
		{"signed profile", signed, "Profile", PageProfile},
		{"signed unknown", signed, "Admin", PageDashboard},
		{"signed register", signed, "Register", PageDashboard},
		{"case sensitive", signed, "funds", PageDashboard},
		{"signed fund", signed, "Fund", PageFund},
		{"anonymous fund", anon, "Fund", PageLogin},
		{"reports without role", signed, "Reports", PageDashboard},
		{"reports for auditor", auditor, "Reports", PageReports},
		{"reports for admin", admin, "Reports", PageReports},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Route(tt.snap, tt.requested); got != tt.want {
				t.Errorf("Route() = %v, want %v", got, tt.want)
			}
		})
	}
}
