package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"ticketledger/internal/audit"
	"ticketledger/internal/balance"
	"ticketledger/internal/clock"
	"ticketledger/internal/nftregistry"
	"ticketledger/internal/orgregistry"
	"ticketledger/internal/ticketing/models"
	"ticketledger/internal/ticketing/service"
	eventstore "ticketledger/internal/ticketing/store/event"
	ticketstore "ticketledger/internal/ticketing/store/ticket"
	"ticketledger/pkg/testutil"
)

const (
	owner     = "ST1OWNER"
	escrow    = "ST2ESCROW"
	organizer = "SP2ORG"
	buyer     = "SP3BUYER"
)

// HandlerSuite drives the HTTP layer against a real service with in-memory
// collaborators; only transport behavior is asserted here.
type HandlerSuite struct {
	suite.Suite
	balances *balance.InMemory
	router   chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.balances = balance.NewInMemory()
	svc, err := service.New(
		owner,
		eventstore.NewInMemory(),
		ticketstore.NewInMemory(),
		orgregistry.NewInMemory(1),
		s.balances,
		nftregistry.NewInMemory(),
		clock.NewLogical(),
		service.WithAuditPublisher(audit.NewPublisher(audit.NewInMemoryStore())),
	)
	s.Require().NoError(err)

	h := New(svc, nil)
	s.router = chi.NewRouter()
	h.Register(s.router)
	h.RegisterAdmin(s.router)
}

func (s *HandlerSuite) setEscrow() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/escrow", models.SetEscrowRequest{Principal: escrow})
	rr := testutil.DoRequest(s.router, testutil.WithCaller(req, owner))
	testutil.AssertStatusOK(s.T(), rr)
}

func (s *HandlerSuite) createEvent(eventID string, price, total int64) {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/events", models.CreateEventRequest{
		EventID: eventID, TicketPrice: price, TotalTickets: total,
	})
	rr := testutil.DoRequest(s.router, testutil.WithCaller(req, organizer))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
}

func (s *HandlerSuite) TestCreateEvent() {
	s.Run("returns the created event", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/events", models.CreateEventRequest{
			EventID: "concert", TicketPrice: 1000, TotalTickets: 50,
		})
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, organizer))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)

		event := testutil.UnmarshalResponse[models.Event](s.T(), rr)
		s.EqualValues("concert", event.ID)
		s.EqualValues(organizer, event.Organizer)
		s.EqualValues(50, event.AvailableTickets)
	})

	s.Run("malformed JSON yields bad_request", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/events", "{not json")
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, organizer))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("missing principal yields unauthorized", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/events", models.CreateEventRequest{
			EventID: "concert2", TicketPrice: 1000, TotalTickets: 50,
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("duplicate id carries the wire failure code", func() {
		s.createEvent("dup", 1000, 10)
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/events", models.CreateEventRequest{
			EventID: "dup", TicketPrice: 1000, TotalTickets: 10,
		})
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, organizer))
		testutil.AssertStatus(s.T(), rr, http.StatusConflict)
		testutil.AssertFailureCode(s.T(), rr, int(models.FailureTicketExists))
	})
}

func (s *HandlerSuite) TestGetEvent() {
	s.createEvent("concert", 1000, 50)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/events/concert"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "ticket_price", float64(1000))

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/events/missing"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestBuyTicket() {
	s.setEscrow()
	s.createEvent("concert", 1000, 50)
	s.balances.Seed(buyer, 5000)

	s.Run("successful purchase returns the receipt", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/tickets", models.BuyTicketRequest{
			OrgID: 1, EventID: "concert", ApplyDiscount: true,
		})
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, buyer))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)

		receipt := testutil.UnmarshalResponse[models.PurchaseReceipt](s.T(), rr)
		s.EqualValues(0, receipt.TicketID)
		s.EqualValues(1900, receipt.Quote.TotalPrice)
		s.Len(receipt.Transfers, 2)
	})

	s.Run("insufficient funds maps to 402 with code 102", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/tickets", models.BuyTicketRequest{
			OrgID: 1, EventID: "concert", ApplyDiscount: false,
		})
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, "SP3POOR"))
		testutil.AssertStatus(s.T(), rr, http.StatusPaymentRequired)
		testutil.AssertFailureCode(s.T(), rr, int(models.FailureInsufficientFunds))
	})
}

func (s *HandlerSuite) TestEscrowNotSet() {
	s.createEvent("concert", 1000, 50)
	s.balances.Seed(buyer, 5000)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/tickets", models.BuyTicketRequest{
		OrgID: 1, EventID: "concert", ApplyDiscount: true,
	})
	rr := testutil.DoRequest(s.router, testutil.WithCaller(req, buyer))
	testutil.AssertStatus(s.T(), rr, http.StatusConflict)
	testutil.AssertFailureCode(s.T(), rr, int(models.FailureEscrowNotSet))
}

func (s *HandlerSuite) TestRedeemTicket() {
	s.setEscrow()
	s.createEvent("concert", 1000, 50)
	s.balances.Seed(buyer, 5000)

	buyReq := testutil.NewJSONRequest(s.T(), http.MethodPost, "/tickets", models.BuyTicketRequest{
		OrgID: 1, EventID: "concert", ApplyDiscount: true,
	})
	rr := testutil.DoRequest(s.router, testutil.WithCaller(buyReq, buyer))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	s.Run("non-organizer is forbidden", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/tickets/0/redeem")
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, buyer))
		testutil.AssertStatus(s.T(), rr, http.StatusForbidden)
		testutil.AssertFailureCode(s.T(), rr, int(models.FailureNotOrganizer))
	})

	s.Run("organizer redeems once", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/tickets/0/redeem")
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, organizer))
		testutil.AssertStatusOK(s.T(), rr)

		ticket := testutil.UnmarshalResponse[models.Ticket](s.T(), rr)
		s.True(ticket.Redeemed)

		req = testutil.NewRequest(s.T(), http.MethodPost, "/tickets/0/redeem")
		rr = testutil.DoRequest(s.router, testutil.WithCaller(req, organizer))
		testutil.AssertStatus(s.T(), rr, http.StatusConflict)
		testutil.AssertFailureCode(s.T(), rr, int(models.FailureAlreadyRedeemed))
	})

	s.Run("unknown ticket is 404", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/tickets/999/redeem")
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, organizer))
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
		testutil.AssertFailureCode(s.T(), rr, int(models.FailureTicketNotFound))
	})

	s.Run("malformed ticket id is invalid input", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/tickets/abc/redeem")
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, organizer))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}

func (s *HandlerSuite) TestConfigReads() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/config/platform-fee"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "platform_fee", float64(models.DefaultPlatformFee))

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/config/discount-rate"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "discount_rate", float64(models.DefaultDiscountRate))

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/config/ticket-count"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "ticket_count", float64(0))
}

func (s *HandlerSuite) TestAdminRoutes() {
	s.Run("non-owner is forbidden", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/platform-fee", models.SetPlatformFeeRequest{Fee: 500})
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, buyer))
		testutil.AssertStatus(s.T(), rr, http.StatusForbidden)
		testutil.AssertFailureCode(s.T(), rr, int(models.FailureNotAuthorized))
	})

	s.Run("owner updates the fee", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/platform-fee", models.SetPlatformFeeRequest{Fee: 500})
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, owner))
		testutil.AssertStatusOK(s.T(), rr)

		rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/config/platform-fee"))
		testutil.AssertJSONContains(s.T(), rr, "platform_fee", float64(500))
	})

	s.Run("escrow principal must be present", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/escrow", models.SetEscrowRequest{Principal: "  "})
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, owner))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation")
	})

	s.Run("invalid discount rate carries the wire code", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/discount-rate", models.SetDiscountRateRequest{Rate: 101})
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, owner))
		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		testutil.AssertFailureCode(s.T(), rr, int(models.FailureInvalidDiscount))
	})
}
