package repository

import (
	"campusedge_payments/internal/domain/entities"
	"campusedge_payments/internal/usecase/interfaces"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const fallbackIDPrefix = "fx_"

// PaymentFileRepository keeps every payment in one JSON array file.
//
// Each mutation reads the whole file, changes it in memory and rewrites it
// (temp file + rename). The mutex serializes that cycle within the process;
// several processes sharing the file are not supported.
//
// IDs are "fx_" followed by Unix milliseconds, bumped so they stay strictly
// increasing even when two payments land in the same millisecond.
type PaymentFileRepository struct {
	path string
	now  func() time.Time

	mu     sync.Mutex
	lastMS int64
}

var _ interfaces.IPaymentRepository = (*PaymentFileRepository)(nil)

func NewPaymentFileRepository(path string) *PaymentFileRepository {
	return &PaymentFileRepository{path: path, now: time.Now}
}

func (r *PaymentFileRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if err := ctx.Err(); err != nil {
		return entities.Payment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return entities.Payment{}, err
	}

	now := r.now()
	p.ID = r.nextID(now, all)
	p.CreatedAt = creationTime(now)

	all = append(all, p)
	if err := r.writeAll(all); err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentFileRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	if err := ctx.Err(); err != nil {
		return entities.Payment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return entities.Payment{}, err
	}
	if idx := indexOf(all, id); idx >= 0 {
		return all[idx], nil
	}
	return entities.Payment{}, nil
}

func (r *PaymentFileRepository) Update(ctx context.Context, id string, u entities.PaymentUpdate) (entities.Payment, error) {
	if err := ctx.Err(); err != nil {
		return entities.Payment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return entities.Payment{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 || !u.Permits(all[idx].Status) {
		return entities.Payment{}, nil
	}

	all[idx] = u.Apply(all[idx])
	if err := r.writeAll(all); err != nil {
		return entities.Payment{}, err
	}
	return all[idx], nil
}

// List returns every stored payment in insertion order.
func (r *PaymentFileRepository) List(ctx context.Context) ([]entities.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll()
}

func (r *PaymentFileRepository) nextID(now time.Time, existing []entities.Payment) string {
	ms := now.UnixMilli()
	if ms <= r.lastMS {
		ms = r.lastMS + 1
	}
	for _, p := range existing {
		if prev, ok := parseFallbackID(p.ID); ok && ms <= prev {
			ms = prev + 1
		}
	}
	r.lastMS = ms
	return fallbackIDPrefix + strconv.FormatInt(ms, 10)
}

func parseFallbackID(id string) (int64, bool) {
	if !strings.HasPrefix(id, fallbackIDPrefix) {
		return 0, false
	}
	ms, err := strconv.ParseInt(strings.TrimPrefix(id, fallbackIDPrefix), 10, 64)
	return ms, err == nil
}

func (r *PaymentFileRepository) readAll() ([]entities.Payment, error) {
	b, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []entities.Payment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read fallback file: %w", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return []entities.Payment{}, nil
	}

	var all []entities.Payment
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("decode fallback file: %w", err)
	}
	return all, nil
}

func (r *PaymentFileRepository) writeAll(all []entities.Payment) error {
	b, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".payments-*.tmp")
	if err != nil {
		return fmt.Errorf("write fallback file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write fallback file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write fallback file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace fallback file: %w", err)
	}
	return nil
}

func indexOf(all []entities.Payment, id string) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}
	return -1
}
