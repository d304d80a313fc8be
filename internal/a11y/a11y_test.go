package a11y

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	tests := []struct {
		in   string
		want EventType
	}{
		{"notification_state_changed", TypeNotificationStateChanged},
		{"TYPE_NOTIFICATION_STATE_CHANGED", TypeNotificationStateChanged},
		{"  view_clicked ", TypeViewClicked},
		{"64", TypeNotificationStateChanged},
		{"2048", TypeWindowContentChanged},
		{"type_32", TypeWindowStateChanged},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEventType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEventType_Unknown(t *testing.T) {
	for _, in := range []string{"", "toast", "3", "type_"} {
		_, err := ParseEventType(in)
		require.Error(t, err, in)
		assert.True(t, IsUnknownEventType(err), in)
	}
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "notification_state_changed", TypeNotificationStateChanged.String())
	assert.Equal(t, "type_5", EventType(5).String())
}

func TestAutomation_DispatchToInstalledListener(t *testing.T) {
	a := NewAutomation()
	assert.False(t, a.Dispatch(Event{Type: TypeViewClicked}), "no listener installed")

	var got []Event
	a.SetListener(ListenerFunc(func(ev Event) { got = append(got, ev) }))
	assert.True(t, a.Dispatch(Event{ID: "1", Type: TypeViewClicked}))
	assert.True(t, a.Dispatch(Event{ID: "2", Type: TypeNotificationStateChanged, Text: []string{"x"}}))
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, []string{"x"}, got[1].Text)

	a.SetListener(nil)
	assert.Nil(t, a.Listener())
	assert.False(t, a.Dispatch(Event{}))
}

func TestAutomation_ListenerMaySwapSlotDuringDispatch(t *testing.T) {
	a := NewAutomation()
	second := 0
	a.SetListener(ListenerFunc(func(Event) {
		a.SetListener(ListenerFunc(func(Event) { second++ }))
	}))
	a.Dispatch(Event{})
	a.Dispatch(Event{})
	assert.Equal(t, 1, second)
}
