package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type serviceRecord struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenantId"`
	Name            string          `json:"name"`
	Price           int64           `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
	Category        domain.Category `json:"category"`
	Description     *string         `json:"description,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func toServiceRecord(s *domain.Service) serviceRecord {
	return serviceRecord{
		ID:              s.ID,
		TenantID:        s.TenantID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Category:        s.Category,
		Description:     s.Description,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (r serviceRecord) toDomain() *domain.Service {
	return &domain.Service{
		ID:              r.ID,
		TenantID:        r.TenantID,
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Category:        r.Category,
		Description:     r.Description,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// CatalogRepository каталог услуг в Redis: один хэш на тенанта
type CatalogRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewCatalogRepository создает каталог на Redis
func NewCatalogRepository(client redis.UniversalClient) *CatalogRepository {
	return &CatalogRepository{client: client, now: time.Now}
}

// List услуги тенанта, отсортированные по категории и названию
func (r *CatalogRepository) List(ctx context.Context, tenantID string, filter domain.ServiceFilter) ([]*domain.Service, error) {
	all, err := r.loadAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	services := make([]*domain.Service, 0, len(all))
	for _, s := range all {
		if filter.Matches(s) {
			services = append(services, s)
		}
	}
	sortServices(services)

	return services, nil
}

// GetByIDs услуги тенанта по идентификаторам, отсутствующие пропускаются
func (r *CatalogRepository) GetByIDs(ctx context.Context, tenantID string, ids []string) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}

	values, err := r.client.HMGet(ctx, ServiceKey(tenantID), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - hmget: %v", ErrStorage, err)
	}

	services := make([]*domain.Service, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		s, err := decodeService(raw)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	sortServices(services)

	return services, nil
}

// GetByID получает услугу тенанта
func (r *CatalogRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Service, error) {
	raw, err := r.client.HGet(ctx, ServiceKey(tenantID), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - hget: %v", ErrStorage, err)
	}

	return decodeService(raw)
}

// Create сохраняет новую услугу
func (r *CatalogRepository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	now := r.now().UTC()
	service.CreatedAt = now
	service.UpdatedAt = now

	if err := r.put(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// Update перезаписывает услугу (last-write-wins)
func (r *CatalogRepository) Update(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	current, err := r.GetByID(ctx, service.TenantID, service.ID)
	if err != nil {
		return nil, err
	}

	service.CreatedAt = current.CreatedAt
	service.UpdatedAt = r.now().UTC()

	if err := r.put(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// SetActive мягкое удаление или восстановление
func (r *CatalogRepository) SetActive(ctx context.Context, tenantID, id string, active bool) error {
	current, err := r.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}

	current.IsActive = active
	current.UpdatedAt = r.now().UTC()

	return r.put(ctx, current)
}

// ReplaceAll деактивирует текущие услуги и добавляет новые одной транзакцией MULTI
func (r *CatalogRepository) ReplaceAll(ctx context.Context, tenantID string, services []*domain.Service) error {
	all, err := r.loadAll(ctx, tenantID)
	if err != nil {
		return err
	}

	now := r.now().UTC()
	fields := make(map[string]interface{}, len(all)+len(services))

	for _, s := range all {
		if !s.IsActive {
			continue
		}
		s.IsActive = false
		s.UpdatedAt = now
		raw, err := json.Marshal(toServiceRecord(s))
		if err != nil {
			return fmt.Errorf("%w: ReplaceAll - encode: %v", ErrStorage, err)
		}
		fields[s.ID] = raw
	}

	for _, s := range services {
		s.CreatedAt = now
		s.UpdatedAt = now
		raw, err := json.Marshal(toServiceRecord(s))
		if err != nil {
			return fmt.Errorf("%w: ReplaceAll - encode: %v", ErrStorage, err)
		}
		fields[s.ID] = raw
	}

	if len(fields) == 0 {
		return nil
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, ServiceKey(tenantID), fields)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - exec: %v", ErrStorage, err)
	}

	return nil
}

func (r *CatalogRepository) put(ctx context.Context, service *domain.Service) error {
	raw, err := json.Marshal(toServiceRecord(service))
	if err != nil {
		return fmt.Errorf("%w: put - encode: %v", ErrStorage, err)
	}

	if err := r.client.HSet(ctx, ServiceKey(service.TenantID), service.ID, raw).Err(); err != nil {
		return fmt.Errorf("%w: put - hset: %v", ErrStorage, err)
	}

	return nil
}

func (r *CatalogRepository) loadAll(ctx context.Context, tenantID string) ([]*domain.Service, error) {
	values, err := r.client.HGetAll(ctx, ServiceKey(tenantID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: loadAll - hgetall: %v", ErrStorage, err)
	}

	services := make([]*domain.Service, 0, len(values))
	for _, raw := range values {
		s, err := decodeService(raw)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}

	return services, nil
}

func decodeService(raw string) (*domain.Service, error) {
	var rec serviceRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("%w: service: %v", ErrDecode, err)
	}
	return rec.toDomain(), nil
}

func sortServices(services []*domain.Service) {
	sort.Slice(services, func(i, j int) bool {
		return domain.LessServices(services[i], services[j])
	})
}
