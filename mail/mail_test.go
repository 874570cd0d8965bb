package mail

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bimmills/portal/config"
	"github.com/bimmills/portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mock.Mock
	mu   sync.Mutex
	sent []Message
}

func (m *mockClient) Send(ctx context.Context, from, to, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, Message{To: to, Subject: subject, Body: body})
	m.mu.Unlock()
	return m.Called(from, to, subject).Error(0)
}

func (m *mockClient) messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

func strPtr(s string) *string { return &s }

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		Provider:      "log",
		From:          "orders@bim.example",
		FromName:      "BIM Mills",
		AdminEmail:    "admin@bim.example",
		WebsiteDomain: "https://bim.example/",
	}
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹0.00", formatRupees(0))
	assert.Equal(t, "₹999.50", formatRupees(999.5))
	assert.Equal(t, "₹1,234.50", formatRupees(1234.5))
	assert.Equal(t, "₹1,234,567.00", formatRupees(1234567))
	assert.Equal(t, "₹-1,000.00", formatRupees(-1000))
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(config.MailConfig{Provider: "log"})
	require.NoError(t, err)
	assert.IsType(t, LogClient{}, c)

	c, err = NewClient(config.MailConfig{Provider: "sendgrid"})
	require.NoError(t, err)
	assert.IsType(t, &SendGridClient{}, c)

	c, err = NewClient(config.MailConfig{Provider: "smtp"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPClient{}, c)

	_, err = NewClient(config.MailConfig{Provider: "fax"})
	assert.Error(t, err)
}

func TestSendGridRejectsMissingKey(t *testing.T) {
	err := NewSendGridClient("", "BIM Mills").Send(context.Background(), "a@x.com", "b@x.com", "hi", "<p>hi</p>")
	assert.ErrorContains(t, err, "api key")
}

func TestDispatcherDeliversQueuedMessages(t *testing.T) {
	client := &mockClient{}
	client.On("Send", "orders@bim.example", mock.Anything, mock.Anything).Return(nil)

	d := NewDispatcher(client, "orders@bim.example", 8, 2, time.Second)
	assert.True(t, d.Submit(Message{To: "a@x.com", Subject: "one"}))
	assert.True(t, d.Submit(Message{To: "b@x.com", Subject: "two"}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		assert.NoError(t, d.Run(ctx))
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(client.messages()) == 2 }, time.Second, 10*time.Millisecond)
	cancel()
	<-done
}

func TestDispatcherDrainsOnShutdown(t *testing.T) {
	client := &mockClient{}
	client.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	d := NewDispatcher(client, "from@x.com", 4, 1, time.Second)
	for i := range 3 {
		require.True(t, d.Submit(Message{To: "a@x.com", Subject: strings.Repeat("x", i+1)}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(ctx))
	assert.Len(t, client.messages(), 3)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := NewDispatcher(&mockClient{}, "from@x.com", 1, 1, time.Second)
	assert.True(t, d.Submit(Message{To: "a@x.com"}))
	assert.False(t, d.Submit(Message{To: "b@x.com"}))
}

func TestDispatcherSendReturnsError(t *testing.T) {
	client := &mockClient{}
	client.On("Send", "from@x.com", "a@x.com", "subject").Return(errors.New("smtp down"))

	d := NewDispatcher(client, "from@x.com", 1, 1, time.Second)
	err := d.Send(context.Background(), Message{To: "a@x.com", Subject: "subject"})
	assert.ErrorContains(t, err, "smtp down")
}

func TestNotifierOrderEmails(t *testing.T) {
	d := NewDispatcher(&mockClient{}, "orders@bim.example", 4, 1, time.Second)
	n := NewNotifier(d, testMailConfig())

	amount := 1500.0
	order := models.Order{
		ID:          42,
		UserName:    strPtr("Asha <b>"),
		UserEmail:   strPtr("a@x.com"),
		UserPhone:   strPtr("9876543210"),
		ProductName: strPtr("Linen"),
		Quantity:    strPtr("10"),
		Amount:      &amount,
	}
	n.OrderPlaced(order)
	n.OrderCancelled(order)

	placed := <-d.queue
	assert.Equal(t, "a@x.com", placed.To)
	assert.Equal(t, "✅ Order Received Successfully | BIM Mills", placed.Subject)
	assert.Contains(t, placed.Body, "#42")
	assert.Contains(t, placed.Body, "₹1,500.00")
	assert.Contains(t, placed.Body, "https://bim.example/cancel-order")
	assert.Contains(t, placed.Body, "Asha &lt;b&gt;")

	cancelled := <-d.queue
	assert.Equal(t, "✅ Order Cancelled Successfully | BIM Mills", cancelled.Subject)
	assert.Contains(t, cancelled.Body, "CANCELLED")
	assert.Contains(t, cancelled.Body, "Linen")
}

func TestNotifierEnquiry(t *testing.T) {
	d := NewDispatcher(&mockClient{}, "orders@bim.example", 4, 1, time.Second)
	n := NewNotifier(d, testMailConfig())

	n.EnquiryReceived(models.Enquiry{ID: 1, Name: "Ravi", Email: "ravi@x.com", Phone: "9876543210", Message: "Need 500m of denim"})
	require.Len(t, d.queue, 2)
	ack := <-d.queue
	assert.Equal(t, "ravi@x.com", ack.To)
	assert.Contains(t, ack.Body, "Ravi")
	notice := <-d.queue
	assert.Equal(t, "admin@bim.example", notice.To)
	assert.Contains(t, notice.Body, "Need 500m of denim")

	cfg := testMailConfig()
	cfg.AdminEmail = ""
	n = NewNotifier(d, cfg)
	n.EnquiryReceived(models.Enquiry{ID: 2, Name: "Ravi", Email: "ravi@x.com"})
	assert.Len(t, d.queue, 1)
}
