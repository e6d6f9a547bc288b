package vtn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/elaadnl/openadr3-go/auth"
	"github.com/elaadnl/openadr3-go/model"
)

// testVTN is an httptest VTN that records the last request and serves a
// per-path canned response.
type testVTN struct {
	srv *httptest.Server

	lastMethod string
	lastPath   string
	lastQuery  map[string][]string
	lastAuth   string
	calls      int

	handler http.HandlerFunc
}

func newTestVTN(t *testing.T, handler http.HandlerFunc) *testVTN {
	t.Helper()
	v := &testVTN{handler: handler}
	v.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v.calls++
		v.lastMethod = r.Method
		v.lastPath = r.URL.Path
		v.lastQuery = r.URL.Query()
		v.lastAuth = r.Header.Get("Authorization")
		v.handler(w, r)
	}))
	t.Cleanup(v.srv.Close)
	return v
}

func (v *testVTN) client(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(v.srv.URL, nil, Options{HTTPTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func sampleExistingEvent(id string) model.ExistingEvent {
	return model.ExistingEvent{
		ID:              id,
		CreatedDateTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Event:           sampleNewEvent().Event,
	}
}

func sampleNewEvent() *model.NewEvent {
	return &model.NewEvent{
		Event: model.Event{
			ProgramID: "program-1",
			Intervals: []model.Interval{
				{
					ID: 0,
					IntervalPeriod: &model.IntervalPeriod{
						Start:    time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
						Duration: model.Duration(time.Hour),
					},
					Payloads: []model.Payload{
						{Type: model.PayloadSimple, Values: []model.Value{model.NumberValue(1)}},
					},
				},
			},
		},
	}
}

func TestEventsListSendsFilterAndBearer(t *testing.T) {
	is := is.New(t)

	vtn := newTestVTN(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, []model.ExistingEvent{sampleExistingEvent("event-1")})
	})

	tokens, err := auth.NewProvider(auth.Config{
		TokenURL:     stubTokenEndpoint(t, "the-access-token"),
		ClientID:     "ven-client",
		ClientSecret: "secret",
	})
	is.NoErr(err)

	c, err := NewClient(vtn.srv.URL, tokens, Options{HTTPTimeout: 5 * time.Second})
	is.NoErr(err)

	events, err := NewEventsClient(c).List(context.Background(), EventFilter{
		ProgramID:    "program-1",
		TargetFilter: TargetFilter{Type: "GROUP", Values: []string{"north", "south"}},
		Pagination:   Pagination{Skip: 10, Limit: 5},
	})
	is.NoErr(err)
	is.Equal(len(events), 1)
	is.Equal(events[0].ID, "event-1")

	is.Equal(vtn.lastMethod, http.MethodGet)
	is.Equal(vtn.lastPath, "/events")
	is.Equal(vtn.lastQuery["programID"], []string{"program-1"})
	is.Equal(vtn.lastQuery["targetType"], []string{"GROUP"})
	is.Equal(vtn.lastQuery["targetValues"], []string{"north", "south"})
	is.Equal(vtn.lastQuery["skip"], []string{"10"})
	is.Equal(vtn.lastQuery["limit"], []string{"5"})
	is.Equal(vtn.lastAuth, "Bearer the-access-token")
}

// stubTokenEndpoint serves a single static bearer token.
func stubTokenEndpoint(t *testing.T, token string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{
			"access_token": token,
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestListRejectsNegativePagination(t *testing.T) {
	is := is.New(t)

	vtn := newTestVTN(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := NewEventsClient(vtn.client(t)).List(context.Background(), EventFilter{
		Pagination: Pagination{Skip: -5},
	})
	is.True(err != nil)

	_, err = NewEventsClient(vtn.client(t)).List(context.Background(), EventFilter{
		Pagination: Pagination{Limit: -1},
	})
	is.True(err != nil)
	is.Equal(vtn.calls, 0)
}

func TestEventsGet(t *testing.T) {
	is := is.New(t)

	vtn := newTestVTN(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, sampleExistingEvent("event-7"))
	})

	event, err := NewEventsClient(vtn.client(t)).Get(context.Background(), "event-7")
	is.NoErr(err)
	is.Equal(vtn.lastPath, "/events/event-7")
	is.Equal(event.ID, "event-7")
	is.Equal(event.ProgramID, "program-1")
}

func TestEventCreateIsOneShot(t *testing.T) {
	is := is.New(t)

	vtn := newTestVTN(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusCreated, sampleExistingEvent("event-1"))
	})
	events := NewEventsClient(vtn.client(t))

	event := sampleNewEvent()
	created, err := events.Create(context.Background(), event)
	is.NoErr(err)
	is.Equal(created.ID, "event-1")
	is.Equal(vtn.lastMethod, http.MethodPost)
	is.Equal(vtn.lastPath, "/events")

	_, err = events.Create(context.Background(), event)
	is.True(errors.Is(err, model.ErrAlreadyCreated))
	is.Equal(vtn.calls, 1)
}

func TestEventCreateReleasedOnFailure(t *testing.T) {
	is := is.New(t)

	fail := true
	vtn := newTestVTN(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			respondJSON(w, http.StatusInternalServerError, Problem{
				Title: "Internal Server Error", Status: 500,
			})
			return
		}
		respondJSON(w, http.StatusCreated, sampleExistingEvent("event-1"))
	})
	events := NewEventsClient(vtn.client(t))

	event := sampleNewEvent()
	_, err := events.Create(context.Background(), event)
	var se *StatusError
	is.True(errors.As(err, &se))
	is.Equal(se.StatusCode, http.StatusInternalServerError)

	// A failed create leaves the object usable for a retry.
	fail = false
	created, err := events.Create(context.Background(), event)
	is.NoErr(err)
	is.Equal(created.ID, "event-1")
}

func TestEventUpdateRejectsIDMismatch(t *testing.T) {
	is := is.New(t)

	vtn := newTestVTN(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := NewEventsClient(vtn.client(t)).Update(context.Background(), "event-1", sampleExistingEvent("event-2"))
	is.True(err != nil)
	is.Equal(vtn.calls, 0)
}

func TestNotFoundProblem(t *testing.T) {
	is := is.New(t)

	vtn := newTestVTN(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, Problem{
			Type:   "about:blank",
			Title:  "Not Found",
			Status: 404,
			Detail: "no event with id event-9",
		})
	})

	_, err := NewEventsClient(vtn.client(t)).Get(context.Background(), "event-9")
	is.True(IsNotFound(err))

	var se *StatusError
	is.True(errors.As(err, &se))
	is.Equal(se.Problem.Title, "Not Found")
	is.Equal(se.Problem.Detail, "no event with id event-9")
}

func TestVenResourcePaths(t *testing.T) {
	is := is.New(t)

	vtn := newTestVTN(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/vens/ven-1/resources":
			respondJSON(w, http.StatusOK, []model.ExistingResource{})
		case r.Method == http.MethodPost && r.URL.Path == "/vens/ven-1/resources":
			respondJSON(w, http.StatusCreated, model.ExistingResource{
				ID:       "res-1",
				VenID:    "ven-1",
				Resource: model.Resource{ResourceName: "meter-1"},
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/vens/ven-1/resources/res-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	vens := NewVensClient(vtn.client(t))
	ctx := context.Background()

	_, err := vens.ListResources(ctx, "ven-1", ResourceFilter{ResourceName: "meter-1"})
	is.NoErr(err)
	is.Equal(vtn.lastQuery["resourceName"], []string{"meter-1"})

	created, err := vens.CreateResource(ctx, "ven-1", &model.NewResource{
		Resource: model.Resource{ResourceName: "meter-1"},
	})
	is.NoErr(err)
	is.Equal(created.ID, "res-1")
	is.Equal(created.VenID, "ven-1")

	is.NoErr(vens.DeleteResource(ctx, "ven-1", "res-1"))
}

func TestSubscriptionCreate(t *testing.T) {
	is := is.New(t)

	var received model.Subscription
	vtn := newTestVTN(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode subscription: %v", err)
		}
		respondJSON(w, http.StatusCreated, model.ExistingSubscription{
			ID:           "sub-1",
			Subscription: received,
		})
	})

	sub := &model.NewSubscription{
		Subscription: model.Subscription{
			ClientName: "client-1",
			ProgramID:  "program-1",
			ObjectOperations: []model.ObjectOperation{{
				Objects:     []model.ObjectType{model.ObjectEvent},
				Operations:  []model.Operation{model.OperationPost},
				CallbackURL: "https://callback.example.com/events",
				BearerToken: "callback-secret",
			}},
		},
	}
	created, err := NewSubscriptionsClient(vtn.client(t)).Create(context.Background(), sub)
	is.NoErr(err)
	is.Equal(vtn.lastPath, "/subscriptions")
	is.Equal(created.ID, "sub-1")
	is.Equal(received.ObjectOperations[0].CallbackURL, "https://callback.example.com/events")
	is.Equal(received.ObjectOperations[0].BearerToken, "callback-secret")
}

func TestAuthServerDiscovery(t *testing.T) {
	is := is.New(t)

	vtn := newTestVTN(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, AuthServerInfo{TokenURL: "https://auth.example.com/token"})
	})

	// Discovery works without a token provider.
	info, err := vtn.client(t).AuthServer(context.Background())
	is.NoErr(err)
	is.Equal(vtn.lastPath, "/auth/server")
	is.Equal(vtn.lastAuth, "")
	is.Equal(info.TokenURL, "https://auth.example.com/token")
}

func TestRequireHTTPSRejectsPlainHTTP(t *testing.T) {
	is := is.New(t)

	_, err := NewClient("http://vtn.example.com/openadr3", nil, Options{RequireHTTPS: true})
	is.True(err != nil)
}

func TestStatusErrorMessage(t *testing.T) {
	is := is.New(t)

	se := &StatusError{
		Op:         "GET events",
		StatusCode: 403,
		Problem:    &Problem{Title: "Forbidden", Detail: "read-only token"},
	}
	is.Equal(se.Error(), fmt.Sprintf("GET events: vtn returned status %d: Forbidden: read-only token", 403))
}
