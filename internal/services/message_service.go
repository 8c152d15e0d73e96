package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/dtos"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/repositories"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

// HTML template for the internal notification sent to the agency inbox
// when a new lead arrives.
const leadNotificationHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: monospace; line-height: 1.5; }
  .container { border: 1px solid #ccc; padding: 15px; max-width: 600px; }
  h2 { margin-top: 0; }
  ul { list-style: none; padding: 0; }
  li { margin-bottom: 5px; }
  strong { color: #000; }
</style>
</head>
<body>
  <div class="container">
    <h2>Nuevo mensaje de contacto</h2>
    <ul>
      <li><strong>Nombre:</strong> %s</li>
      <li><strong>Email:</strong> %s</li>
      <li><strong>Teléfono:</strong> %s</li>
      <li><strong>Asunto:</strong> %s</li>
      <li><strong>Inmueble:</strong> %s</li>
      <li><strong>Recibido (UTC):</strong> %s</li>
    </ul>
    <p>%s</p>
  </div>
</body>
</html>`

type MessageService struct {
	msgRepo        repositories.MessageRepository
	propRepo       repositories.PropertyRepository
	sendgridClient *sendgrid.Client
	fromEmail      string
	notifyEmail    string
}

// NewMessageService builds the lead service. sendgridClient may be nil;
// notifications are then skipped (local/dev setups).
func NewMessageService(
	msgRepo repositories.MessageRepository,
	propRepo repositories.PropertyRepository,
	sendgridClient *sendgrid.Client,
	fromEmail string,
	notifyEmail string,
) *MessageService {
	return &MessageService{
		msgRepo:        msgRepo,
		propRepo:       propRepo,
		sendgridClient: sendgridClient,
		fromEmail:      fromEmail,
		notifyEmail:    notifyEmail,
	}
}

/* ------------------------------------------------------------------
   Public contact form
------------------------------------------------------------------ */

func (s *MessageService) SubmitContact(ctx context.Context, req *dtos.ContactRequest) (*models.Message, error) {
	propertyTitle := ""
	propertyID := req.PropertyID
	if propertyID != nil {
		p, err := s.propRepo.GetByID(ctx, *propertyID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			// Stale link from the UI; keep the lead, drop the reference.
			propertyID = nil
		} else {
			propertyTitle = p.Title
		}
	}

	m := &models.Message{
		ID:         uuid.New(),
		PropertyID: propertyID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    req.Subject,
		Body:       req.Body,
		Status:     models.MessageStatusNueva,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.msgRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("could not store message: %w", err)
	}

	s.notifyAgency(m, propertyTitle)
	return m, nil
}

/* ------------------------------------------------------------------
   Back office
------------------------------------------------------------------ */

func (s *MessageService) List(ctx context.Context, status *models.MessageStatusType) ([]*models.Message, error) {
	if status != nil && !models.ValidMessageStatus(*status) {
		return nil, utils.ErrInvalidStatus
	}
	return s.msgRepo.List(ctx, status)
}

func (s *MessageService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MessageStatusType) error {
	if !models.ValidMessageStatus(status) {
		return utils.ErrInvalidStatus
	}
	if err := s.msgRepo.UpdateStatus(ctx, id, status); err != nil {
		return mapNoRows(err, utils.ErrMessageNotFound)
	}
	return nil
}

func (s *MessageService) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	if err := s.msgRepo.SetPinned(ctx, id, pinned); err != nil {
		return mapNoRows(err, utils.ErrMessageNotFound)
	}
	return nil
}

func (s *MessageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.msgRepo.Delete(ctx, id); err != nil {
		return mapNoRows(err, utils.ErrMessageNotFound)
	}
	return nil
}

/* ------------------------------------------------------------------
   internals
------------------------------------------------------------------ */

// notifyAgency is best-effort: a lead lost to SendGrid downtime would
// be worse than a missing notification, so failures only get logged.
func (s *MessageService) notifyAgency(m *models.Message, propertyTitle string) {
	if s.sendgridClient == nil || s.notifyEmail == "" {
		return
	}

	if propertyTitle == "" {
		propertyTitle = "—"
	}
	html := fmt.Sprintf(leadNotificationHTML,
		m.Name, m.Email, m.Phone, m.Subject, propertyTitle,
		m.ReceivedAt.Format(time.RFC3339), m.Body,
	)

	from := mail.NewEmail("Fincas Trimar Web", s.fromEmail)
	to := mail.NewEmail("", s.notifyEmail)
	msg := mail.NewSingleEmail(from, "Nuevo mensaje de contacto", to, m.Body, html)

	resp, err := s.sendgridClient.Send(msg)
	if err != nil {
		utils.Logger.WithError(err).Warn("Failed to send lead notification")
		return
	}
	if resp.StatusCode >= 300 {
		utils.Logger.Warnf("Lead notification rejected by SendGrid: status %d", resp.StatusCode)
	}
}

func mapNoRows(err, sentinel error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}
