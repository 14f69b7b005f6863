package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/squeegee-samurai/squeegee-api/internal/domain/entity"
)

// UserIndexer writes the public part of a user into the users directory index.
type UserIndexer struct {
	ES      *elasticsearch.Client
	Index   string
	Timeout time.Duration
}

func NewUserIndexer(es *elasticsearch.Client, index string) *UserIndexer {
	return &UserIndexer{ES: es, Index: index, Timeout: 3 * time.Second}
}

type userDoc struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	FullName  string      `json:"full_name"`
	Phone     string      `json:"phone"`
	Role      entity.Role `json:"role"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// IndexUser upserts u by ID. The password hash is never sent.
func (i *UserIndexer) IndexUser(ctx context.Context, u *entity.User) error {
	if i.ES == nil || i.Index == "" {
		return nil
	}
	b, err := json.Marshal(userDoc{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(ctx, i.Timeout)
	defer cancel()
	req := esapi.IndexRequest{Index: i.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, i.ES)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Ping reports whether the cluster answers.
func (i *UserIndexer) Ping(ctx context.Context) error {
	if i.ES == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	res, err := i.ES.Ping(i.ES.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es ping: %s", res.Status())
	}
	return nil
}
