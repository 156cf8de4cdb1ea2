package memory

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"simple-crud-api/internal/adapter/repotest"
	"simple-crud-api/internal/domain/identity"
	itemuc "simple-crud-api/internal/usecase/item"
	useruc "simple-crud-api/internal/usecase/user"
)

func TestUserRepo_Contract(t *testing.T) {
	repotest.RunUserRepoContract(t, func(t *testing.T, ids identity.Generator) useruc.Repository {
		return NewUserRepo(ids, zaptest.NewLogger(t))
	})
}

func TestItemRepo_Contract(t *testing.T) {
	repotest.RunItemRepoContract(t, func(t *testing.T, ids identity.Generator) itemuc.Repository {
		return NewItemRepo(ids, zaptest.NewLogger(t))
	})
}
