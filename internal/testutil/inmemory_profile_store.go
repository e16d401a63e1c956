package testutil

import (
	"context"
	"sync"

	pdfdomain "github.com/billaged/billaged/internal/domain/pdf"
	ierr "github.com/billaged/billaged/internal/errors"
)

// InMemoryProfileStore implements pdf.ProfileRepository
type InMemoryProfileStore struct {
	mu       sync.RWMutex
	biller   *pdfdomain.BillerInfo
	clients  map[string]*pdfdomain.RecipientInfo
	projects map[string]*pdfdomain.ProjectInfo
}

// NewInMemoryProfileStore creates a profile store seeded with a stock biller
func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{
		biller: &pdfdomain.BillerInfo{
			Name:  "Acme Consulting LLC",
			Email: "billing@acme.test",
			Address: pdfdomain.AddressInfo{
				Street: "1 Market Street",
				City:   "San Francisco",
				State:  "CA",
			},
		},
		clients:  make(map[string]*pdfdomain.RecipientInfo),
		projects: make(map[string]*pdfdomain.ProjectInfo),
	}
}

func (s *InMemoryProfileStore) SetBiller(b *pdfdomain.BillerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.biller = b
}

func (s *InMemoryProfileStore) AddClient(id string, c *pdfdomain.RecipientInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[id] = c
}

func (s *InMemoryProfileStore) AddProject(id string, p *pdfdomain.ProjectInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[id] = p
}

func (s *InMemoryProfileStore) GetBiller(ctx context.Context) (*pdfdomain.BillerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.biller, nil
}

func (s *InMemoryProfileStore) GetClient(ctx context.Context, clientID string) (*pdfdomain.RecipientInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, exists := s.clients[clientID]
	if !exists {
		return nil, ierr.NewError("client not found").
			WithHintf("client %s not found", clientID).
			Mark(ierr.ErrNotFound)
	}
	return client, nil
}

func (s *InMemoryProfileStore) GetProject(ctx context.Context, projectID string) (*pdfdomain.ProjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, exists := s.projects[projectID]
	if !exists {
		return nil, ierr.NewError("project not found").
			WithHintf("project %s not found", projectID).
			Mark(ierr.ErrNotFound)
	}
	return project, nil
}
