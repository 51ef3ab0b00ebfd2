// Package fakedata generates names, emails and passwords for test users.
package fakedata

import (
	"fmt"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// PasswordLength is the length of generated passwords
const PasswordLength = 16

// Generator produces fake user details. Emails are unique per generator.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
	seq   uint64
}

// New creates a generator. A zero seed picks a random one.
func New(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Name returns a full name
func (g *Generator) Name() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.faker.Name()
}

// Email returns an address that this generator has not returned before
func (g *Generator) Email() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	local, domain, found := strings.Cut(g.faker.Email(), "@")
	if !found {
		return fmt.Sprintf("user%d@example.com", g.seq)
	}
	return fmt.Sprintf("%s+%d@%s", strings.ToLower(local), g.seq, strings.ToLower(domain))
}

// Password returns a mixed-case alphanumeric password with symbols
func (g *Generator) Password() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.faker.Password(true, true, true, true, false, PasswordLength)
}
