package sheets

import (
	"DriveLine/entity"
	"DriveLine/internal/config"
	"DriveLine/internal/lib/sl"
	"DriveLine/internal/service/gcal"
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const ledgerRange = "Appointments!A:H"

// Service appends each booking as one spreadsheet row.
type Service struct {
	sheets  *sheets.Service
	sheetID string
	log     *slog.Logger
}

func NewService(ctx context.Context, conf *config.Config, logger *slog.Logger) (*Service, error) {
	if !conf.Google.Enabled || conf.Google.SheetId == "" {
		return nil, nil
	}

	httpClient, err := gcal.ServiceAccountClient(ctx, conf.Google.CredentialsPath, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}

	return &Service{
		sheets:  svc,
		sheetID: conf.Google.SheetId,
		log:     logger.With(sl.Module("sheets")),
	}, nil
}

func (s *Service) AppendAppointment(ctx context.Context, appt entity.Appointment) error {
	row := []interface{}{
		appt.ID,
		appt.CarModel.Name,
		appt.DateTime.Format(time.RFC3339),
		appt.Customer.Name,
		appt.Customer.Phone,
		appt.Customer.Email,
		string(appt.Status),
		appt.CreatedAt.Format(time.RFC3339),
	}

	values := &sheets.ValueRange{Values: [][]interface{}{row}}

	_, err := s.sheets.Spreadsheets.Values.
		Append(s.sheetID, ledgerRange, values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending appointment row: %w", err)
	}

	s.log.With(slog.String("appointment", appt.ID)).Debug("appointment appended to ledger")
	return nil
}
