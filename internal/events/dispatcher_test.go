package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventTokenRenewed, func(_ context.Context, e Event) error {
		got = append(got, "renewed")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventUserLoggedIn, "u-1", nil))

	assert.NoError(t, err)
	assert.Equal(t, []string{"first:u-1", "second:u-1"}, got)
}

func TestDispatcher_HandlerErrorsDoNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	called := false
	d.Subscribe(EventLoginFailed, func(context.Context, Event) error { return boom })
	d.Subscribe(EventLoginFailed, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventLoginFailed, "", LoginFailedPayload{Email: "a@b.c"}))

	assert.ErrorIs(t, err, boom)
	assert.True(t, called)
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventUserRegistered, "u-1", nil)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, EventUserRegistered, e.Type)
	assert.False(t, e.Timestamp.IsZero())
}

func TestDispatcher_PanicIsContained(t *testing.T) {
	d := NewInMemoryDispatcher()
	called := false
	d.Subscribe(EventTokenRenewed, func(context.Context, Event) error { panic("bad handler") })
	d.Subscribe(EventTokenRenewed, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventTokenRenewed, "u-1", nil))

	assert.ErrorContains(t, err, "token_renewed handler panicked: bad handler")
	assert.True(t, called)
}

func TestDispatcher_StopsOnCancelledContext(t *testing.T) {
	d := NewInMemoryDispatcher()
	called := false
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Publish(ctx, NewEvent(EventUserRegistered, "u-1", nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
