package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/tidwall/buntdb"
)

const infoKey = "info"

// DefaultInfoText is shown until an administrator saves a custom text
const DefaultInfoText = "Этот бот предназначен для получения оповещений об открытых ордерах на платформе Konvert2pay."

type infoDocument struct {
	Text string `json:"text"`
}

// InfoStorage implements core.InfoStorage as a single JSON document in BuntDB
type InfoStorage struct {
	db  *buntdb.DB
	log logger.Logger
}

// NewInfoFromMemory creates an in-memory info storage
func NewInfoFromMemory(log logger.Logger) (*InfoStorage, error) {
	return NewInfoStorage(":memory:", log)
}

// NewInfoStorage opens the BuntDB file holding the info document
func NewInfoStorage(sourceFile string, log logger.Logger) (*InfoStorage, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	return &InfoStorage{db: db, log: log}, nil
}

// Load returns the saved text. A missing or unreadable document is replaced
// by the default text, which is written back.
func (b *InfoStorage) Load(ctx context.Context) (string, error) {
	var raw string
	err := b.db.View(func(tx *buntdb.Tx) error {
		var err error
		raw, err = tx.Get(infoKey)
		return err
	})

	switch {
	case errors.Is(err, buntdb.ErrNotFound):
		b.log.Info("info text missing, writing default")
	case err != nil:
		return "", fmt.Errorf("failed to read info text: %w", err)
	default:
		var doc infoDocument
		if err := json.Unmarshal([]byte(raw), &doc); err == nil && strings.TrimSpace(doc.Text) != "" {
			return doc.Text, nil
		}
		b.log.Warn("info text unreadable, restoring default")
	}

	if err := b.Save(ctx, DefaultInfoText); err != nil {
		return "", err
	}
	return DefaultInfoText, nil
}

// Save overwrites the info document
func (b *InfoStorage) Save(_ context.Context, text string) error {
	content, err := json.Marshal(infoDocument{Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal info text: %w", err)
	}

	return b.db.Update(func(tx *buntdb.Tx) error {
		if _, _, err := tx.Set(infoKey, string(content), nil); err != nil {
			return fmt.Errorf("failed to store info text: %w", err)
		}
		return nil
	})
}

// Close closes the database connection
func (b *InfoStorage) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
