package app

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/Rooms/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRegistry_EnsureGuild_CreatesEmptyMap(t *testing.T) {
	reg := NewRegistry()
	rooms := reg.EnsureGuild("g1")
	require.NotNil(t, rooms)
	require.Empty(t, rooms)

	require.NoError(t, reg.Insert("g1", "c1", domain.Room{OwnerID: "alice"}))
	rooms = reg.EnsureGuild("g1")
	require.Len(t, rooms, 1)

	// The returned map is a copy.
	delete(rooms, "c1")
	require.Equal(t, 1, reg.Len())
}

func TestRegistry_InsertAndFindByOwner(t *testing.T) {
	reg := NewRegistry()
	room := domain.Room{OwnerID: "alice", AccessRoleID: "r1", Capacity: 3, CreatedAt: time.Now()}
	require.NoError(t, reg.Insert("g1", "c1", room))

	got, ok := reg.FindByOwner("g1", "alice")
	require.True(t, ok)
	require.Equal(t, domain.ChannelID("c1"), got.ChannelID)
	require.Equal(t, domain.GuildID("g1"), got.GuildID)
	require.Equal(t, 3, got.Capacity)

	_, ok = reg.FindByOwner("g1", "bob")
	require.False(t, ok)
	_, ok = reg.FindByOwner("g2", "alice")
	require.False(t, ok, "rooms are scoped per guild")
}

func TestRegistry_Insert_DuplicateChannel(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Insert("g1", "c1", domain.Room{OwnerID: "alice"}))
	err := reg.Insert("g1", "c1", domain.Room{OwnerID: "bob"})
	require.ErrorIs(t, err, ErrDuplicateChannel)

	got, _ := reg.Get("g1", "c1")
	require.Equal(t, domain.UserID("alice"), got.OwnerID)
}

func TestRegistry_Remove_IsIdempotent(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Insert("g1", "c1", domain.Room{OwnerID: "alice"}))

	require.True(t, reg.Remove("g1", "c1"))
	require.False(t, reg.Remove("g1", "c1"))
	require.False(t, reg.Remove("unknown", "c1"))
	require.Zero(t, reg.Len())
}

func TestRegistry_Claim_BlocksSecondCreation(t *testing.T) {
	reg := NewRegistry()

	release, ok := reg.Claim("g1", "alice")
	require.True(t, ok)
	_, ok = reg.Claim("g1", "alice")
	require.False(t, ok)

	_, ok = reg.Claim("g1", "bob")
	require.True(t, ok, "claims are per owner")

	release()
	release2, ok := reg.Claim("g1", "alice")
	require.True(t, ok)
	release2()

	require.NoError(t, reg.Insert("g1", "c1", domain.Room{OwnerID: "alice"}))
	_, ok = reg.Claim("g1", "alice")
	require.False(t, ok, "an owner with a room cannot claim again")
}

func TestRegistry_Snapshot(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Insert("g1", "c1", domain.Room{OwnerID: "alice"}))
	require.NoError(t, reg.Insert("g1", "c2", domain.Room{OwnerID: "bob"}))
	require.NoError(t, reg.Insert("g2", "c3", domain.Room{OwnerID: "alice"}))

	require.Len(t, reg.Snapshot(), 3)
	require.Equal(t, 3, reg.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ch := domain.ChannelID(fmt.Sprintf("c%d", i%26))
			_ = reg.Insert("g1", ch, domain.Room{OwnerID: domain.UserID(ch)})
			reg.FindByOwner("g1", domain.UserID(ch))
			reg.Snapshot()
			reg.Remove("g1", ch)
		}(i)
	}
	wg.Wait()
}
