// Package apitest provides an in-memory stand-in for the club REST backend.
package apitest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/config"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// Request is one call observed by the backend.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Auth   string
	Body   map[string]any
}

// Backend is a fake REST backend with seeded accounts and collections.
type Backend struct {
	Server *httptest.Server

	mu            sync.Mutex
	users         map[string]*account
	tokens        map[string]string
	events        []domain.Event
	announcements []domain.Announcement
	donations     []domain.Donation
	contacts      []domain.Contact
	branches      []domain.Branch
	requests      []Request
	failures      map[string]int
	delays        map[string]time.Duration
	seq           int
}

type account struct {
	user     domain.User
	password string
}

// New starts a backend. Close it with Backend.Close.
func New() *Backend {
	b := &Backend{
		users:    map[string]*account{},
		tokens:   map[string]string{},
		failures: map[string]int{},
		delays:   map[string]time.Duration{},
		branches: []domain.Branch{{ID: "b-main", Name: "Main Campus"}, {ID: "b-health", Name: "Health Science"}},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", b.login)
	mux.HandleFunc("POST /auth/register", b.register)
	mux.HandleFunc("GET /auth/me", b.authed(b.me))
	mux.HandleFunc("PUT /auth/updatedetails", b.authed(b.updateDetails))
	mux.HandleFunc("PUT /auth/updatepassword", b.authed(b.updatePassword))
	mux.HandleFunc("GET /events", b.authed(b.listEvents))
	mux.HandleFunc("POST /events", b.authed(b.createEvent))
	mux.HandleFunc("GET /events/{id}", b.authed(b.getEvent))
	mux.HandleFunc("PUT /events/{id}", b.authed(b.ok))
	mux.HandleFunc("DELETE /events/{id}", b.authed(b.deleteEvent))
	mux.HandleFunc("POST /events/{id}/register", b.authed(b.registerEvent))
	mux.HandleFunc("POST /events/{id}/feedback", b.authed(b.ok))
	mux.HandleFunc("GET /announcements", b.authed(b.listAnnouncements))
	mux.HandleFunc("POST /announcements", b.authed(b.createAnnouncement))
	mux.HandleFunc("PUT /announcements/{id}", b.authed(b.ok))
	mux.HandleFunc("DELETE /announcements/{id}", b.authed(b.ok))
	mux.HandleFunc("POST /announcements/{id}/like", b.authed(b.likeAnnouncement))
	mux.HandleFunc("POST /announcements/{id}/comments", b.authed(b.ok))
	mux.HandleFunc("GET /donations", b.authed(b.listDonations))
	mux.HandleFunc("POST /donations", b.authed(b.createDonation))
	mux.HandleFunc("GET /donations/stats", b.authed(b.donationStats))
	mux.HandleFunc("PUT /donations/{id}", b.authed(b.ok))
	mux.HandleFunc("DELETE /donations/{id}", b.authed(b.ok))
	mux.HandleFunc("PUT /donations/{id}/verify", b.authed(b.verifyDonation))
	mux.HandleFunc("GET /users", b.authed(b.listUsers))
	mux.HandleFunc("POST /users", b.authed(b.ok))
	mux.HandleFunc("PUT /users/{id}", b.authed(b.ok))
	mux.HandleFunc("DELETE /users/{id}", b.authed(b.ok))
	mux.HandleFunc("PUT /users/{id}/approve", b.authed(b.approveUser))
	mux.HandleFunc("PUT /users/{id}/reject", b.authed(b.ok))
	mux.HandleFunc("POST /contacts", b.submitContact)
	mux.HandleFunc("GET /contacts", b.authed(b.listContacts))
	mux.HandleFunc("PUT /contacts/{id}/read", b.authed(b.ok))
	mux.HandleFunc("DELETE /contacts/{id}", b.authed(b.ok))
	mux.HandleFunc("GET /branches", b.listBranches)
	mux.HandleFunc("GET /dashboard/stats", b.authed(b.dashboardStats))
	mux.HandleFunc("GET /dashboard/activities", b.authed(b.dashboardActivities))
	mux.HandleFunc("GET /dashboard/personal", b.authed(b.dashboardPersonal))

	b.Server = httptest.NewServer(b.intercept(mux))
	return b
}

// Close shuts the server down.
func (b *Backend) Close() {
	b.Server.Close()
}

// Config returns a backend config pointing at the server.
func (b *Backend) Config() config.BackendConfig {
	return config.BackendConfig{BaseURL: b.Server.URL, TimeoutSeconds: 5}
}

// AddUser seeds an account and returns it.
func (b *Backend) AddUser(user domain.User, password string) domain.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	if user.ID == "" {
		user.ID = b.nextID("u")
	}
	user.IsActive = true
	b.users[user.Email] = &account{user: user, password: password}
	return user
}

// IssueToken mints a token for an existing account.
func (b *Backend) IssueToken(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.users[email]
	if acc == nil {
		return ""
	}
	return b.issue(acc.user.ID)
}

// RevokeTokens invalidates every issued token.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = map[string]string{}
}

// AddEvent seeds an event.
func (b *Backend) AddEvent(ev domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ev.ID == "" {
		ev.ID = b.nextID("e")
	}
	b.events = append(b.events, ev)
}

// AddAnnouncement seeds an announcement.
func (b *Backend) AddAnnouncement(a domain.Announcement) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if a.ID == "" {
		a.ID = b.nextID("a")
	}
	b.announcements = append(b.announcements, a)
}

// AddDonation seeds a donation.
func (b *Backend) AddDonation(d domain.Donation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d.ID == "" {
		d.ID = b.nextID("d")
	}
	b.donations = append(b.donations, d)
}

// Fail forces every request to "METHOD /path" to answer with status.
func (b *Backend) Fail(route string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = status
}

// Delay holds every request to "METHOD /path" for d before answering.
func (b *Backend) Delay(route string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delays[route] = d
}

// Requests returns the observed calls in order.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// RequestsTo filters observed calls by "METHOD /path".
func (b *Backend) RequestsTo(route string) []Request {
	var out []Request
	for _, r := range b.Requests() {
		if r.Method+" "+r.Path == route {
			out = append(out, r)
		}
	}
	return out
}

func (b *Backend) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		route := r.Method + " " + r.URL.Path

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		status, failing := b.failures[route]
		delay := b.delays[route]
		b.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			writeJSON(w, status, map[string]any{"message": fmt.Sprintf("forced failure %d", status)})
			return
		}

		ctx := r.Context()
		r = r.WithContext(withBody(ctx, body))
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) authed(next func(http.ResponseWriter, *http.Request, *domain.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		userID, ok := b.tokens[token]
		var user *domain.User
		if ok {
			for _, acc := range b.users {
				if acc.user.ID == userID {
					u := acc.user
					user = &u
				}
			}
		}
		b.mu.Unlock()
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Not authorized to access this route"})
			return
		}
		next(w, r, user)
	}
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	body := bodyOf(r)
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)

	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.users[email]
	if acc == nil || acc.password != password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": b.issue(acc.user.ID), "user": acc.user})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	body := bodyOf(r)
	var fields []map[string]string
	for _, key := range []string{"firstName", "lastName", "email", "password"} {
		if s, _ := body[key].(string); s == "" {
			fields = append(fields, map[string]string{"field": key, "message": key + " is required"})
		}
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Validation failed", "errors": fields})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	email := body["email"].(string)
	if _, exists := b.users[email]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "User already exists"})
		return
	}
	user := domain.User{
		ID:        b.nextID("u"),
		FirstName: body["firstName"].(string),
		LastName:  body["lastName"].(string),
		Email:     email,
		Role:      domain.RoleMember,
		IsActive:  true,
	}
	b.users[email] = &account{user: user, password: body["password"].(string)}
	writeJSON(w, http.StatusCreated, map[string]any{"token": b.issue(user.ID), "user": user})
}

func (b *Backend) me(w http.ResponseWriter, _ *http.Request, user *domain.User) {
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (b *Backend) updateDetails(w http.ResponseWriter, r *http.Request, user *domain.User) {
	body := bodyOf(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.users[user.Email]
	if s, ok := body["firstName"].(string); ok {
		acc.user.FirstName = s
	}
	if s, ok := body["lastName"].(string); ok {
		acc.user.LastName = s
	}
	if s, ok := body["phone"].(string); ok {
		acc.user.Phone = s
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": acc.user})
}

func (b *Backend) updatePassword(w http.ResponseWriter, r *http.Request, user *domain.User) {
	body := bodyOf(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.users[user.Email]
	if current, _ := body["currentPassword"].(string); current != acc.password {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Password is incorrect"})
		return
	}
	acc.password, _ = body["newPassword"].(string)
	writeJSON(w, http.StatusOK, map[string]any{"user": acc.user, "token": b.issue(acc.user.ID)})
}

func (b *Backend) listEvents(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	q := r.URL.Query()
	b.mu.Lock()
	var items []domain.Event
	for _, ev := range b.events {
		if t := q.Get("type"); t != "" && string(ev.Type) != t {
			continue
		}
		if s := q.Get("status"); s != "" && string(ev.Status) != s {
			continue
		}
		if s := q.Get("search"); s != "" && !strings.Contains(strings.ToLower(ev.Title), strings.ToLower(s)) {
			continue
		}
		items = append(items, ev)
	}
	b.mu.Unlock()
	writePage(w, q, items)
}

func (b *Backend) getEvent(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ev := range b.events {
		if ev.ID == r.PathValue("id") {
			writeJSON(w, http.StatusOK, map[string]any{"data": ev})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "Event not found"})
}

func (b *Backend) createEvent(w http.ResponseWriter, r *http.Request, user *domain.User) {
	body := bodyOf(r)
	title, _ := body["title"].(string)
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Validation failed",
			"errors": []map[string]string{
				{"field": "title", "message": "Title is required"},
				{"field": "startDate", "message": "Start date is required"},
			},
		})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	ev := domain.Event{ID: b.nextID("e"), Title: title, Status: domain.EventUpcoming, CreatedBy: &domain.UserRef{ID: user.ID}}
	if t, ok := body["type"].(string); ok {
		ev.Type = domain.EventType(t)
	}
	b.events = append(b.events, ev)
	writeJSON(w, http.StatusCreated, map[string]any{"data": ev})
}

func (b *Backend) deleteEvent(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ev := range b.events {
		if ev.ID == r.PathValue("id") {
			b.events = append(b.events[:i], b.events[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{}})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "Event not found"})
}

func (b *Backend) registerEvent(w http.ResponseWriter, r *http.Request, user *domain.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.events {
		if b.events[i].ID == r.PathValue("id") {
			if b.events[i].HasParticipant(user.ID) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Already registered for this event"})
				return
			}
			b.events[i].Participants = append(b.events[i].Participants, user.ID)
			writeJSON(w, http.StatusOK, map[string]any{"data": b.events[i]})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "Event not found"})
}

func (b *Backend) listAnnouncements(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	b.mu.Lock()
	items := append([]domain.Announcement(nil), b.announcements...)
	b.mu.Unlock()
	writePage(w, r.URL.Query(), items)
}

func (b *Backend) createAnnouncement(w http.ResponseWriter, r *http.Request, user *domain.User) {
	body := bodyOf(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	a := domain.Announcement{ID: b.nextID("a"), Author: &domain.UserRef{ID: user.ID}, IsPublished: true}
	a.Title, _ = body["title"].(string)
	a.Content, _ = body["content"].(string)
	b.announcements = append(b.announcements, a)
	writeJSON(w, http.StatusCreated, map[string]any{"data": a})
}

func (b *Backend) likeAnnouncement(w http.ResponseWriter, r *http.Request, user *domain.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.announcements {
		a := &b.announcements[i]
		if a.ID != r.PathValue("id") {
			continue
		}
		if a.LikedBy(user.ID) {
			likes := a.Likes[:0]
			for _, id := range a.Likes {
				if id != user.ID {
					likes = append(likes, id)
				}
			}
			a.Likes = likes
		} else {
			a.Likes = append(a.Likes, user.ID)
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": a})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "Announcement not found"})
}

func (b *Backend) listDonations(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	q := r.URL.Query()
	b.mu.Lock()
	var items []domain.Donation
	for _, d := range b.donations {
		if t := q.Get("type"); t != "" && string(d.Type) != t {
			continue
		}
		if s := q.Get("status"); s != "" && string(d.Status) != s {
			continue
		}
		items = append(items, d)
	}
	b.mu.Unlock()
	writePage(w, q, items)
}

func (b *Backend) createDonation(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	body := bodyOf(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	d := domain.Donation{ID: b.nextID("d"), Status: domain.DonationPending}
	if t, ok := body["type"].(string); ok {
		d.Type = domain.DonationType(t)
	}
	if amount, ok := body["amount"].(float64); ok {
		d.Amount = amount
	}
	b.donations = append(b.donations, d)
	writeJSON(w, http.StatusCreated, map[string]any{"data": d})
}

func (b *Backend) verifyDonation(w http.ResponseWriter, r *http.Request, user *domain.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.donations {
		if b.donations[i].ID == r.PathValue("id") {
			b.donations[i].Status = domain.DonationVerified
			b.donations[i].VerifiedBy = &domain.UserRef{ID: user.ID}
			writeJSON(w, http.StatusOK, map[string]any{"data": b.donations[i]})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "Donation not found"})
}

func (b *Backend) donationStats(w http.ResponseWriter, _ *http.Request, _ *domain.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stats := domain.DonationStats{ByType: map[string]int{}}
	for _, d := range b.donations {
		stats.TotalDonations++
		stats.TotalAmount += d.Amount
		stats.ByType[string(d.Type)]++
		switch d.Status {
		case domain.DonationPending:
			stats.Pending++
		case domain.DonationVerified:
			stats.Verified++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": stats})
}

func (b *Backend) listUsers(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	q := r.URL.Query()
	b.mu.Lock()
	var items []domain.User
	for _, acc := range b.users {
		if role := q.Get("role"); role != "" && string(acc.user.Role) != role {
			continue
		}
		if approved := q.Get("isApproved"); approved != "" && strconv.FormatBool(acc.user.IsApproved) != approved {
			continue
		}
		items = append(items, acc.user)
	}
	b.mu.Unlock()
	writePage(w, q, items)
}

func (b *Backend) approveUser(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acc := range b.users {
		if acc.user.ID == r.PathValue("id") {
			acc.user.IsApproved = true
			writeJSON(w, http.StatusOK, map[string]any{"data": acc.user})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "User not found"})
}

func (b *Backend) submitContact(w http.ResponseWriter, r *http.Request) {
	body := bodyOf(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	c := domain.Contact{ID: b.nextID("c"), CreatedAt: time.Now()}
	c.Name, _ = body["name"].(string)
	c.Email, _ = body["email"].(string)
	c.Subject, _ = body["subject"].(string)
	c.Message, _ = body["message"].(string)
	b.contacts = append(b.contacts, c)
	writeJSON(w, http.StatusCreated, map[string]any{"data": c})
}

func (b *Backend) listContacts(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	b.mu.Lock()
	items := append([]domain.Contact(nil), b.contacts...)
	b.mu.Unlock()
	writePage(w, r.URL.Query(), items)
}

func (b *Backend) listBranches(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	items := append([]domain.Branch(nil), b.branches...)
	b.mu.Unlock()
	writePage(w, r.URL.Query(), items)
}

func (b *Backend) dashboardStats(w http.ResponseWriter, _ *http.Request, _ *domain.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stats := domain.DashboardStats{TotalEvents: len(b.events), TotalDonations: len(b.donations), ActiveBranches: len(b.branches)}
	for _, acc := range b.users {
		switch acc.user.Role {
		case domain.RoleMember:
			stats.TotalMembers++
		case domain.RoleVolunteer:
			stats.TotalVolunteers++
		}
		if !acc.user.IsApproved && (acc.user.Role == domain.RoleMember || acc.user.Role == domain.RoleVolunteer) {
			stats.PendingApprovals++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": stats})
}

func (b *Backend) dashboardActivities(w http.ResponseWriter, _ *http.Request, _ *domain.User) {
	writeJSON(w, http.StatusOK, map[string]any{"data": []domain.Activity{
		{Type: "event", Description: "New event scheduled", CreatedAt: time.Now()},
	}})
}

func (b *Backend) dashboardPersonal(w http.ResponseWriter, _ *http.Request, user *domain.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	personal := domain.PersonalDashboard{UpcomingRegistered: []domain.Event{}}
	for _, ev := range b.events {
		if ev.HasParticipant(user.ID) {
			personal.UpcomingRegistered = append(personal.UpcomingRegistered, ev)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": personal})
}

func (b *Backend) ok(w http.ResponseWriter, _ *http.Request, _ *domain.User) {
	writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{}})
}

// issue must run with b.mu held.
func (b *Backend) issue(userID string) string {
	token := b.nextID("tok")
	b.tokens[token] = userID
	return token
}

// nextID must run with b.mu held.
func (b *Backend) nextID(prefix string) string {
	b.seq++
	return prefix + "-" + strconv.Itoa(b.seq)
}

type bodyKey struct{}

func withBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

func bodyOf(r *http.Request) map[string]any {
	body, _ := r.Context().Value(bodyKey{}).(map[string]any)
	if body == nil {
		body = map[string]any{}
	}
	return body
}

func writePage[T any](w http.ResponseWriter, q url.Values, items []T) {
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	query := domain.PageQuery{Page: page, Limit: limit}.Normalize()

	total := len(items)
	start := (query.Page - 1) * query.Limit
	if start > total {
		start = total
	}
	end := start + query.Limit
	if end > total {
		end = total
	}
	writeJSON(w, http.StatusOK, domain.Page[T]{
		Items: append([]T{}, items[start:end]...),
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
