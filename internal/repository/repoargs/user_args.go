package repoargs

import "github.com/fsdevblog/learnmarket/internal/domain"

type CreateUser struct {
	Name     string
	Email    string
	Password string
	Role     domain.RoleType
}
