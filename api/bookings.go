package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"atc-cli/booking"
)

// ListBookings fetches all upcoming bookings.
func (c *Client) ListBookings(ctx context.Context) ([]booking.Booking, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/bookings", nil)
	if err != nil {
		return nil, err
	}
	var bookings []booking.Booking
	if err := c.doJSON(req, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListBookingsByDate fetches bookings on a given UTC calendar day.
func (c *Client) ListBookingsByDate(ctx context.Context, date time.Time) ([]booking.Booking, error) {
	path := "/bookings/date/" + date.UTC().Format(booking.DateLayout)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var bookings []booking.Booking
	if err := c.doJSON(req, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListBookingsByUser fetches the bookings owned by a VID.
func (c *Client) ListBookingsByUser(ctx context.Context, vid string) ([]booking.Booking, error) {
	path := "/bookings/user/" + url.PathEscape(vid)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var bookings []booking.Booking
	if err := c.doJSON(req, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, id string) (booking.Booking, error) {
	path := "/bookings/" + url.PathEscape(id)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return booking.Booking{}, err
	}
	var b booking.Booking
	if err := c.doJSON(req, &b); err != nil {
		return booking.Booking{}, err
	}
	return b, nil
}

// CreateBooking submits a draft and returns the created booking with
// its server-assigned id.
func (c *Client) CreateBooking(ctx context.Context, draft booking.Draft) (booking.Booking, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/bookings", draft)
	if err != nil {
		return booking.Booking{}, err
	}
	var b booking.Booking
	if err := c.doJSON(req, &b); err != nil {
		return booking.Booking{}, err
	}
	return b, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id string, draft booking.Draft) (booking.Booking, error) {
	path := "/bookings/" + url.PathEscape(id)
	req, err := c.newRequest(ctx, http.MethodPut, path, draft)
	if err != nil {
		return booking.Booking{}, err
	}
	var b booking.Booking
	if err := c.doJSON(req, &b); err != nil {
		return booking.Booking{}, err
	}
	return b, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	path := "/bookings/" + url.PathEscape(id)
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// EnsureOwned is the advisory ownership check run before mutating a
// booking, so a mismatch fails locally instead of round-tripping to
// the server.
func (c *Client) EnsureOwned(b booking.Booking) error {
	if c.vid == "" || b.VID != c.vid {
		return ErrNotOwner
	}
	return nil
}
