package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient/apitest"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/tokenstore"
)

func TestRegistryMountsEachSessionOnce(t *testing.T) {
	backend := apitest.New()
	t.Cleanup(backend.Close)
	backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember}, "pw")
	tokens := tokenstore.NewMemory()
	require.NoError(t, tokens.Save(context.Background(), "sid-1", backend.IssueToken("member@club.org"), time.Hour))

	reg := NewRegistry(apiclient.New(backend.Config()), tokens, time.Minute, Options{})

	var wg sync.WaitGroup
	stores := make([]*Store, 4)
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := reg.Get(context.Background(), "sid-1")
			assert.NoError(t, err)
			stores[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range stores {
		assert.Same(t, stores[0], s)
	}
	assert.Equal(t, StatusAuthenticated, stores[0].State().Status())
	assert.Len(t, backend.RequestsTo("GET /auth/me"), 1)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistrySweepEvictsIdleSessions(t *testing.T) {
	backend := apitest.New()
	t.Cleanup(backend.Close)
	reg := NewRegistry(apiclient.New(backend.Config()), tokenstore.NewMemory(), time.Minute, Options{})
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	now := base
	reg.now = func() time.Time { return now }

	_, err := reg.Get(context.Background(), "old")
	require.NoError(t, err)
	now = base.Add(50 * time.Second)
	_, err = reg.Get(context.Background(), "fresh")
	require.NoError(t, err)

	assert.Equal(t, 1, reg.Sweep(base.Add(90*time.Second)))
	assert.Equal(t, 1, reg.Len())

	reg.Forget("fresh")
	assert.Zero(t, reg.Len())
}

func TestRegistryEvictedSessionRestoresFromStorage(t *testing.T) {
	backend := apitest.New()
	t.Cleanup(backend.Close)
	backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember}, "pw")
	reg := NewRegistry(apiclient.New(backend.Config()), tokenstore.NewMemory(), time.Minute, Options{})

	first, err := reg.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	require.NoError(t, first.Login(context.Background(), "member@club.org", "pw"))
	reg.Forget("sid-1")

	second, err := reg.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Token(), second.Token())
	assert.True(t, second.State().Authenticated())
}
