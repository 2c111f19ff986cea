package sendgrid

import (
	"context"
	"fmt"
	"strings"

	"github.com/aminati-ec/catalog-studio/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService delivers cash-on-delivery order notifications to the store
// operator's inbox.
type EmailService interface {
	SendOrderNotification(ctx context.Context, order *models.OrderNotifyRequest) error
}

type emailService struct {
	client     *sendgrid.Client
	fromEmail  string
	fromName   string
	orderEmail string
}

func NewEmailService(apiKey, fromEmail, fromName, orderEmail string) EmailService {
	return &emailService{
		client:     sendgrid.NewSendClient(apiKey),
		fromEmail:  fromEmail,
		fromName:   fromName,
		orderEmail: orderEmail,
	}
}

// SendOrderNotification implements EmailService.
func (e *emailService) SendOrderNotification(ctx context.Context, order *models.OrderNotifyRequest) error {
	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail("", e.orderEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = fmt.Sprintf("【注文】%s (%s)", order.ProductName, order.ProductNumber)
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", orderBody(order)))

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send order notification, status code: %d", response.StatusCode)
	}

	return nil
}

func orderBody(order *models.OrderNotifyRequest) string {
	var b strings.Builder

	b.WriteString("新しい代引き注文が入りました。\n\n")
	b.WriteString("【商品】\n")
	fmt.Fprintf(&b, "品番: %s\n", order.ProductNumber)
	fmt.Fprintf(&b, "商品名: %s\n", order.ProductName)
	if order.Color != "" {
		fmt.Fprintf(&b, "カラー: %s\n", order.Color)
	}
	if order.Size != "" {
		fmt.Fprintf(&b, "サイズ: %s\n", order.Size)
	}
	fmt.Fprintf(&b, "数量: %d\n", order.Quantity)
	fmt.Fprintf(&b, "合計: ¥%d（代引き手数料込み）\n\n", order.Total)

	b.WriteString("【お届け先】\n")
	fmt.Fprintf(&b, "氏名: %s\n", order.CustomerName)
	if order.CustomerKana != "" {
		fmt.Fprintf(&b, "フリガナ: %s\n", order.CustomerKana)
	}
	fmt.Fprintf(&b, "電話番号: %s\n", order.Phone)
	if order.Email != "" {
		fmt.Fprintf(&b, "メール: %s\n", order.Email)
	}
	fmt.Fprintf(&b, "郵便番号: %s\n", order.Zip)
	fmt.Fprintf(&b, "住所: %s\n", order.Address)
	if order.Note != "" {
		fmt.Fprintf(&b, "備考: %s\n", order.Note)
	}

	return b.String()
}
