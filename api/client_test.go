package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"atc-cli/api"
	"atc-cli/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...api.Option) (*api.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts = append([]api.Option{api.WithBaseURL(server.URL + "/api")}, opts...)
	return api.NewClient(opts...), server
}

func sampleBooking() booking.Booking {
	return booking.Booking{
		ID:       "bk1",
		Position: "SBGR_APP",
		VID:      "123456",
		From:     time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2026, 9, 2, 2, 0, 0, 0, time.UTC),
	}
}

func TestListBookings(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/bookings", r.URL.Path)
		json.NewEncoder(w).Encode([]booking.Booking{sampleBooking()})
	})

	got, err := client.ListBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "SBGR_APP", got[0].Position)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), got[0].From.UTC())
}

func TestListBookingsByDate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings/date/2026-09-02", r.URL.Path)
		json.NewEncoder(w).Encode([]booking.Booking{})
	})

	got, err := client.ListBookingsByDate(context.Background(), time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListBookingsByUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings/user/123456", r.URL.Path)
		json.NewEncoder(w).Encode([]booking.Booking{sampleBooking()})
	})

	got, err := client.ListBookingsByUser(context.Background(), "123456")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestVIDHeaderAttachedWhenSet(t *testing.T) {
	var gotHeader string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(api.VIDHeader)
		json.NewEncoder(w).Encode([]booking.Booking{})
	}, api.WithVID("123456"))

	_, err := client.ListBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "123456", gotHeader)
}

func TestVIDHeaderAbsentWhenUnset(t *testing.T) {
	var present bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		present = len(r.Header.Values(api.VIDHeader)) > 0
		json.NewEncoder(w).Encode([]booking.Booking{})
	})

	_, err := client.ListBookings(context.Background())
	require.NoError(t, err)
	assert.False(t, present)
}

func TestCreateBooking(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bookings", r.URL.Path)

		var draft booking.Draft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "SBGR_APP", draft.Position)
		assert.Equal(t, "123456", draft.VID)

		created := booking.Booking{
			ID:       "server-id",
			Position: draft.Position,
			VID:      draft.VID,
			From:     draft.From,
			To:       draft.To,
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}, api.WithVID("123456"))

	sample := sampleBooking()
	created, err := client.CreateBooking(context.Background(), booking.Draft{
		Position: sample.Position,
		VID:      sample.VID,
		From:     sample.From,
		To:       sample.To,
	})
	require.NoError(t, err)
	assert.Equal(t, "server-id", created.ID)
}

func TestUpdateBooking(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/bookings/bk1", r.URL.Path)
		json.NewEncoder(w).Encode(sampleBooking())
	}, api.WithVID("123456"))

	sample := sampleBooking()
	updated, err := client.UpdateBooking(context.Background(), "bk1", booking.Draft{
		Position: sample.Position,
		VID:      sample.VID,
		From:     sample.From,
		To:       sample.To,
	})
	require.NoError(t, err)
	assert.Equal(t, "bk1", updated.ID)
}

func TestDeleteBooking(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/bookings/bk1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, api.WithVID("123456"))

	assert.NoError(t, client.DeleteBooking(context.Background(), "bk1"))
}

func TestGetBookingNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetBooking(context.Background(), "ghost")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestServerErrorMessageSurfacedVerbatim(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"error field", `{"error": "position already booked"}`},
		{"message field", `{"message": "position already booked"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(tt.body))
			})

			_, err := client.ListBookings(context.Background())
			var serverErr *api.ServerError
			require.ErrorAs(t, err, &serverErr)
			assert.Equal(t, "position already booked", serverErr.Message)
			assert.Equal(t, "position already booked", err.Error())
		})
	}
}

func TestUnstructuredFailureIsUnexpected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	})

	_, err := client.ListBookings(context.Background())
	assert.ErrorIs(t, err, api.ErrUnexpected)
}

func TestEmptySuccessBodyIsUnexpected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}, api.WithVID("123456"))

	sample := sampleBooking()
	_, err := client.CreateBooking(context.Background(), booking.Draft{
		Position: sample.Position,
		VID:      sample.VID,
		From:     sample.From,
		To:       sample.To,
	})
	assert.ErrorIs(t, err, api.ErrUnexpected)

	_, err = client.GetBooking(context.Background(), "bk1")
	assert.ErrorIs(t, err, api.ErrUnexpected)
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := api.NewClient(api.WithBaseURL(server.URL + "/api"))
	server.Close()

	_, err := client.ListBookings(context.Background())
	assert.ErrorIs(t, err, api.ErrNetwork)
}

func TestEnsureOwned(t *testing.T) {
	b := sampleBooking() // owned by 123456

	owner := api.NewClient(api.WithVID("123456"))
	assert.NoError(t, owner.EnsureOwned(b))

	stranger := api.NewClient(api.WithVID("654321"))
	assert.ErrorIs(t, stranger.EnsureOwned(b), api.ErrNotOwner)

	anonymous := api.NewClient()
	assert.ErrorIs(t, anonymous.EnsureOwned(b), api.ErrNotOwner)
}

func TestOwnershipCheckBlocksBeforeAnyRequest(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNoContent)
	}, api.WithVID("654321"))

	// The advisory check fails locally, so the delete is never issued.
	require.ErrorIs(t, client.EnsureOwned(sampleBooking()), api.ErrNotOwner)
	assert.Zero(t, calls)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, api.IsRetryable(api.ErrNetwork))
	assert.True(t, api.IsRetryable(&api.ServerError{Status: 503, Message: "try later"}))
	assert.False(t, api.IsRetryable(&api.ServerError{Status: 400, Message: "bad draft"}))
	assert.False(t, api.IsRetryable(api.ErrNotFound))
	assert.False(t, api.IsRetryable(errors.New("other")))
}
