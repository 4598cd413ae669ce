package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/mastermind/ent"
	"github.com/abhisek/mastermind/ent/slot"
)

// slotRepo implements SlotRepo using the ent client.
type slotRepo struct {
	client *ent.Client
}

func (r *slotRepo) Get(ctx context.Context, key string) (string, bool, error) {
	s, err := r.client.Slot.Query().
		Where(slot.Key(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get slot %q: %w", key, err)
	}
	return s.Value, true, nil
}

func (r *slotRepo) Put(ctx context.Context, key, value string) error {
	n, err := r.client.Slot.Update().
		Where(slot.Key(key)).
		SetValue(value).
		SetUpdatedAt(time.Now()).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update slot %q: %w", key, err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.client.Slot.Create().
		SetKey(key).
		SetValue(value).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("create slot %q: %w", key, err)
	}
	return nil
}

func (r *slotRepo) Delete(ctx context.Context, key string) error {
	_, err := r.client.Slot.Delete().
		Where(slot.Key(key)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}
