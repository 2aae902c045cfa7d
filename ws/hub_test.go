package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recvEvent, oturumun send buffer'ından tek bir event okur.
func recvEvent(t *testing.T, s *Session) Event {
	t.Helper()

	select {
	case raw := <-s.send:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("expected an event, got none")
		return Event{}
	}
}

func TestBroadcastToAllAssignsIncreasingSeq(t *testing.T) {
	hub := NewHub()
	s1 := newTestSession(hub, "conn-1", "u1")
	s2 := newTestSession(hub, "conn-2", "u2")
	hub.addSession(s1)
	hub.addSession(s2)

	hub.BroadcastToAll(Event{Op: OpPostCreated})
	hub.BroadcastToAll(Event{Op: OpPostCreated})

	first1 := recvEvent(t, s1)
	first2 := recvEvent(t, s2)

	// Seq marshal'dan önce atanır — aynı broadcast'in tüm alıcıları
	// aynı numarayı görür.
	assert.Equal(t, int64(1), first1.Seq)
	assert.Equal(t, first1.Seq, first2.Seq)

	assert.Equal(t, int64(2), recvEvent(t, s1).Seq)
	assert.Equal(t, int64(2), recvEvent(t, s2).Seq)
}

func TestBroadcastToRoomOnlyReachesMembers(t *testing.T) {
	hub := NewHub()
	member := newTestSession(hub, "conn-1", "u1")
	outsider := newTestSession(hub, "conn-2", "u2")
	hub.addSession(member)
	hub.addSession(outsider)

	hub.registry.Join(member, PostRoom("p1"))

	hub.BroadcastToRoom(PostRoom("p1"), Event{Op: OpCommentNew})

	event := recvEvent(t, member)
	assert.Equal(t, OpCommentNew, event.Op)
	assert.Empty(t, outsider.send)
}

func TestBroadcastToRoomExceptSkipsSender(t *testing.T) {
	hub := NewHub()
	sender := newTestSession(hub, "conn-1", "u1")
	listener := newTestSession(hub, "conn-2", "u2")
	hub.addSession(sender)
	hub.addSession(listener)

	room := ConversationRoom("c1")
	hub.registry.Join(sender, room)
	hub.registry.Join(listener, room)

	hub.BroadcastToRoomExcept(room, sender, Event{Op: OpTypingStart})

	assert.Equal(t, OpTypingStart, recvEvent(t, listener).Op)
	assert.Empty(t, sender.send)
}

func TestBroadcastToUserReachesAllConnections(t *testing.T) {
	hub := NewHub()
	tab1 := newTestSession(hub, "conn-1", "u1")
	tab2 := newTestSession(hub, "conn-2", "u1")
	other := newTestSession(hub, "conn-3", "u2")
	hub.addSession(tab1)
	hub.addSession(tab2)
	hub.addSession(other)

	hub.BroadcastToUser("u1", Event{Op: OpMessageNew})

	// Aynı kullanıcının iki sekmesi de alır, diğer kullanıcı almaz.
	assert.Equal(t, OpMessageNew, recvEvent(t, tab1).Op)
	assert.Equal(t, OpMessageNew, recvEvent(t, tab2).Op)
	assert.Empty(t, other.send)
}

func TestIsUserOnline(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.IsUserOnline("u1"))

	s := newTestSession(hub, "conn-1", "u1")
	hub.addSession(s)
	assert.True(t, hub.IsUserOnline("u1"))

	hub.removeSession(s)
	assert.False(t, hub.IsUserOnline("u1"))
}

func TestRemoveLastConnectionBroadcastsOffline(t *testing.T) {
	hub := NewHub()
	leaving := newTestSession(hub, "conn-1", "u1")
	watcher := newTestSession(hub, "conn-2", "u2")
	hub.addSession(leaving)
	hub.addSession(watcher)

	hub.removeSession(leaving)

	event := recvEvent(t, watcher)
	require.Equal(t, OpPresenceChange, event.Op)

	var presence PresenceChangeData
	require.NoError(t, decodeData(event.Data, &presence))
	assert.Equal(t, "u1", presence.UserID)
	assert.Equal(t, PresenceOffline, presence.Status)
}

func TestRemoveSessionKeepsOnlineWhileOtherTabsRemain(t *testing.T) {
	hub := NewHub()
	tab1 := newTestSession(hub, "conn-1", "u1")
	tab2 := newTestSession(hub, "conn-2", "u1")
	watcher := newTestSession(hub, "conn-3", "u2")
	hub.addSession(tab1)
	hub.addSession(tab2)
	hub.addSession(watcher)

	hub.removeSession(tab1)

	// İkinci sekme hâlâ bağlı — offline broadcast'i yapılmaz.
	assert.True(t, hub.IsUserOnline("u1"))
	assert.Empty(t, watcher.send)
}

func TestRemoveSessionTwiceIsSafe(t *testing.T) {
	hub := NewHub()
	s := newTestSession(hub, "conn-1", "u1")
	hub.addSession(s)

	hub.removeSession(s)

	// İkinci çağrı panic (double close) üretmemeli.
	assert.NotPanics(t, func() { hub.removeSession(s) })
}

func TestSlowSessionIsEvicted(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := newTestSession(hub, "conn-1", "u1")
	hub.addSession(slow)

	// Buffer'ı ağzına kadar doldur — kimse WritePump ile boşaltmıyor.
	for i := 0; i < sendBufferSize; i++ {
		slow.send <- []byte("{}")
	}

	// Sıradaki broadcast buffer'a sığmaz ve oturumu düşürür.
	hub.BroadcastToAll(Event{Op: OpPostCreated})

	require.Eventually(t, func() bool {
		return !hub.IsUserOnline("u1")
	}, time.Second, 10*time.Millisecond)
}

func TestShutdownClosesAllSessions(t *testing.T) {
	hub := NewHub()
	s := newTestSession(hub, "conn-1", "u1")
	hub.addSession(s)

	hub.Shutdown()

	_, open := <-s.send
	assert.False(t, open)

	// Shutdown sonrası broadcast panic üretmemeli — registry'de hâlâ üyelik
	// kaydı olsa bile oda broadcast'i kapalı channel'lara yazmaz.
	assert.NotPanics(t, func() { hub.BroadcastToAll(Event{Op: OpPostCreated}) })
	assert.NotPanics(t, func() { hub.BroadcastToUser("u1", Event{Op: OpMessageNew}) })
}

func TestBroadcastDuringDisconnectIsSafe(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Dolu send buffer'lı bir oturuma broadcast ile eşzamanlı kopuş:
	// removeSession send channel'ını kapatırken oda broadcast'i aynı
	// channel'a yazmamalı. Kapalı channel'a yazım hem panic'tir hem de
	// -race altında yakalanır.
	for i := 0; i < 25; i++ {
		s := newTestSession(hub, fmt.Sprintf("conn-%d", i), "u1")
		hub.addSession(s)
		for j := 0; j < sendBufferSize; j++ {
			s.send <- []byte("{}")
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				hub.BroadcastToUser("u1", Event{Op: OpMessageNew})
			}
		}()
		go func() {
			defer wg.Done()
			hub.unregister <- s
		}()
		wg.Wait()
	}

	require.Eventually(t, func() bool {
		return !hub.IsUserOnline("u1")
	}, time.Second, 10*time.Millisecond)
}
