package catalog

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// ToListRequest собирает фильтр из query параметров includeInactive и category
func ToListRequest(query url.Values) (*models.ListServicesRequest, error) {
	req := &models.ListServicesRequest{}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	if category := query.Get("category"); category != "" {
		req.Category = &category
	}

	return req, nil
}
