package mcp

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/google/uuid"
)

func parseUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.UUID{}, errors.New("id is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}

func parseOptionalUUID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseUUID(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalWhen(app *cli.App, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	when, err := app.When(value)
	if err != nil {
		return nil, err
	}
	return &when, nil
}
