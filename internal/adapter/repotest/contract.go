// Package repotest holds the behaviour every repository driver must satisfy.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-crud-api/internal/domain/identity"
	domainitem "simple-crud-api/internal/domain/item"
	domainuser "simple-crud-api/internal/domain/user"
	itemuc "simple-crud-api/internal/usecase/item"
	useruc "simple-crud-api/internal/usecase/user"
	pkgerrors "simple-crud-api/pkg/errors"
)

// UserRepoFactory builds an empty user repository using ids.
type UserRepoFactory func(t *testing.T, ids identity.Generator) useruc.Repository

// ItemRepoFactory builds an empty item repository using ids.
type ItemRepoFactory func(t *testing.T, ids identity.Generator) itemuc.Repository

var stamp = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newUser(name string) *domainuser.User {
	return &domainuser.User{Name: name, CreatedAt: stamp, UpdatedAt: stamp}
}

func newItem(name string, price float64) *domainitem.Item {
	return &domainitem.Item{Name: name, Price: price, CreatedAt: stamp}
}

// RunUserRepoContract exercises a user repository driver.
func RunUserRepoContract(t *testing.T, factory UserRepoFactory) {
	ctx := context.Background()

	t.Run("create assigns sequential ids", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})

		a, err := repo.Create(ctx, newUser("Alice"))
		require.NoError(t, err)
		b, err := repo.Create(ctx, newUser("Bob"))
		require.NoError(t, err)

		assert.Equal(t, "1", a.ID)
		assert.Equal(t, "2", b.ID)
		assert.Equal(t, "Alice", a.Name)
		assert.True(t, a.CreatedAt.Equal(stamp))
	})

	t.Run("get returns stored user", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})
		created, err := repo.Create(ctx, &domainuser.User{Name: "Alice", Email: "a@x.com", CreatedAt: stamp, UpdatedAt: stamp})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Email)
		assert.True(t, got.UpdatedAt.Equal(stamp))
	})

	t.Run("get unknown id is not found", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})

		_, err := repo.GetByID(ctx, "nope")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("update applies mutation", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})
		created, err := repo.Create(ctx, newUser("Alice"))
		require.NoError(t, err)

		later := stamp.Add(time.Hour)
		updated, err := repo.Update(ctx, created.ID, func(u *domainuser.User) {
			u.Email = "a@x.com"
			u.UpdatedAt = later
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice", updated.Name)
		assert.Equal(t, "a@x.com", updated.Email)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Email)
		assert.True(t, got.UpdatedAt.Equal(later))
		assert.True(t, got.CreatedAt.Equal(stamp))
	})

	t.Run("update unknown id is not found", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})

		called := false
		_, err := repo.Update(ctx, "nope", func(*domainuser.User) { called = true })
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.False(t, called)
	})

	t.Run("delete twice", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})
		created, err := repo.Create(ctx, newUser("Alice"))
		require.NoError(t, err)

		removed, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", removed.Name)

		_, err = repo.Delete(ctx, created.ID)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("list in insertion order", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})
		for i := 1; i <= 11; i++ {
			_, err := repo.Create(ctx, newUser(fmt.Sprintf("user-%d", i)))
			require.NoError(t, err)
		}

		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 11)
		assert.Equal(t, "user-1", users[0].Name)
		assert.Equal(t, "user-10", users[9].Name)
		assert.Equal(t, "user-11", users[10].Name)
	})

	t.Run("empty list", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})

		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("sequence never reuses ids", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})
		a, err := repo.Create(ctx, newUser("A"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, newUser("B"))
		require.NoError(t, err)
		_, err = repo.Delete(ctx, a.ID)
		require.NoError(t, err)

		c, err := repo.Create(ctx, newUser("C"))
		require.NoError(t, err)
		assert.Equal(t, "3", c.ID)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("legacy ids collide after delete", func(t *testing.T) {
		repo := factory(t, identity.Legacy{})
		a, err := repo.Create(ctx, newUser("A"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, newUser("B"))
		require.NoError(t, err)
		_, err = repo.Delete(ctx, a.ID)
		require.NoError(t, err)

		c, err := repo.Create(ctx, newUser("C"))
		require.NoError(t, err)
		assert.Equal(t, "2", c.ID)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "C", users[0].Name)
	})

	t.Run("concurrent creates get unique ids", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})
		const n = 50

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.Create(ctx, newUser(fmt.Sprintf("u%d", i)))
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		users, err := repo.List(ctx)
		require.NoError(t, err)
		seen := make(map[string]struct{}, n)
		for _, u := range users {
			seen[u.ID] = struct{}{}
		}
		assert.Len(t, seen, n)
	})
}

// RunItemRepoContract exercises an item repository driver.
func RunItemRepoContract(t *testing.T, factory ItemRepoFactory) {
	ctx := context.Background()

	t.Run("create keeps price and description", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})

		it, err := repo.Create(ctx, &domainitem.Item{Name: "Widget", Price: 9.99, Description: "blue", CreatedAt: stamp})
		require.NoError(t, err)
		assert.Equal(t, "1", it.ID)
		assert.Equal(t, 9.99, it.Price)
		assert.Equal(t, "blue", it.Description)
	})

	t.Run("list filters case-insensitively", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})
		for _, name := range []string{"Widget", "Gadget", "WIDGET pro"} {
			_, err := repo.Create(ctx, newItem(name, 1))
			require.NoError(t, err)
		}

		all, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		matched, err := repo.List(ctx, "wid")
		require.NoError(t, err)
		require.Len(t, matched, 2)
		assert.Equal(t, "Widget", matched[0].Name)
		assert.Equal(t, "WIDGET pro", matched[1].Name)

		none, err := repo.List(ctx, "doohickey")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("list folds non-ASCII case", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})
		for _, name := range []string{"École Widget", "ÄPFEL", "apple"} {
			_, err := repo.Create(ctx, newItem(name, 1))
			require.NoError(t, err)
		}

		ecole, err := repo.List(ctx, "école")
		require.NoError(t, err)
		require.Len(t, ecole, 1)
		assert.Equal(t, "École Widget", ecole[0].Name)

		apfel, err := repo.List(ctx, "äpfel")
		require.NoError(t, err)
		require.Len(t, apfel, 1)
		assert.Equal(t, "ÄPFEL", apfel[0].Name)
	})

	t.Run("list treats wildcards literally", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})
		for _, name := range []string{"100% cotton", "cotton", "a_b", "ab"} {
			_, err := repo.Create(ctx, newItem(name, 1))
			require.NoError(t, err)
		}

		pct, err := repo.List(ctx, "%")
		require.NoError(t, err)
		require.Len(t, pct, 1)
		assert.Equal(t, "100% cotton", pct[0].Name)

		under, err := repo.List(ctx, "_")
		require.NoError(t, err)
		require.Len(t, under, 1)
		assert.Equal(t, "a_b", under[0].Name)
	})

	t.Run("delete twice", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})
		it, err := repo.Create(ctx, newItem("Widget", 3))
		require.NoError(t, err)

		removed, err := repo.Delete(ctx, it.ID)
		require.NoError(t, err)
		assert.Equal(t, 3.0, removed.Price)

		_, err = repo.Delete(ctx, it.ID)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("ids are independent from users", func(t *testing.T) {
		repo := factory(t, &identity.Sequence{})

		it, err := repo.Create(ctx, newItem("first", 1))
		require.NoError(t, err)
		assert.Equal(t, "1", it.ID)
	})
}
