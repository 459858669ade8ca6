package appointments

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ToListRequest фильтр из query параметров status, customerId, from, to
func ToListRequest(query url.Values) (*models.ListTenantAppointmentsRequest, error) {
	req := &models.ListTenantAppointmentsRequest{}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if customerID := query.Get("customerId"); customerID != "" {
		req.CustomerID = &customerID
	}

	if from := query.Get("from"); from != "" {
		date, err := time.Parse(domain.DateFormat, from)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
	}
	if to := query.Get("to"); to != "" {
		date, err := time.Parse(domain.DateFormat, to)
		if err != nil {
			return nil, err
		}
		req.EndDate = &date
	}

	return req, nil
}

// exportFilename имя файла выгрузки
func exportFilename(tenantID string, now time.Time) string {
	return "appointments-" + tenantID + "-" + now.Format(domain.DateFormat) + ".xlsx"
}
