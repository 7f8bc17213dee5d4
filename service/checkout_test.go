package service

import (
	"context"
	"errors"
	"testing"

	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/fixtures"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/models"
	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"
)

var tokenResponse = Response(fixtures.GetTokenResponse())

func createMockCheckoutSession(transport Transport) *CheckoutSession {
	return NewCheckoutSessionWithTransport(transport).
		AddItem(item("Item 1", "10.00", 1)).
		AddItem(item("Item 2", "5.00", 2)).
		SetReturnURL("http://localhost/checkout/success").
		SetCancelURL("http://localhost/checkout/cancel")
}

func createdResponse() Response {
	return Response{
		"id":    "PAY-1",
		"state": "created",
		"links": []interface{}{
			map[string]interface{}{"rel": "self", "href": "https://api.sandbox.paypal.com/v1/payments/payment/PAY-1"},
			map[string]interface{}{"rel": "approval_url", "href": "https://www.sandbox.paypal.com/cgi-bin/webscr?cmd=_express-checkout&token=EC-1"},
		},
	}
}

func TestUnitCheckout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	ctx := context.Background()

	Convey("No items - nothing is sent", t, func() {
		mock := NewMockTransport(mockCtrl)
		result, err := NewCheckoutSessionWithTransport(mock).Checkout(ctx)

		So(result, ShouldBeNil)
		kind, _ := KindOf(err)
		So(kind, ShouldEqual, EmptyInput)
	})

	Convey("Error requesting token", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := createMockCheckoutSession(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(nil, errors.New("connection refused"))

		result, err := session.Checkout(ctx)

		So(result, ShouldBeNil)
		kind, _ := KindOf(err)
		So(kind, ShouldEqual, TransportError)
		So(session.ErrorMessage(), ShouldEqual, "connection refused")
		So(session.Items()[0].Currency, ShouldEqual, DefaultCurrency)
		So(len(session.Items()), ShouldEqual, 2)
	})

	Convey("Token response carries an error", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := createMockCheckoutSession(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(Response{"error": "invalid_client", "error_description": "Client Authentication failed"}, nil)

		result, err := session.Checkout(ctx)

		So(result, ShouldBeNil)
		kind, _ := KindOf(err)
		So(kind, ShouldEqual, APIError)
		So(session.ErrorMessage(), ShouldEqual, "Client Authentication failed")
	})

	Convey("Token response without an access token", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := createMockCheckoutSession(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(Response{"token_type": "Bearer"}, nil)

		_, err := session.Checkout(ctx)

		kind, _ := KindOf(err)
		So(kind, ShouldEqual, MissingField)
	})

	Convey("Create payment response carries an error", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := createMockCheckoutSession(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil)
		mock.EXPECT().Send(gomock.Any(), "POST", "/payments/payment", fixtures.AccessToken, gomock.Any()).
			Return(Response{"error": "invalid_client", "error_description": "bad creds"}, nil)

		result, err := session.Checkout(ctx)

		So(result, ShouldBeNil)
		kind, _ := KindOf(err)
		So(kind, ShouldEqual, APIError)
		So(session.ErrorMessage(), ShouldEqual, "bad creds")
		So(len(session.Items()), ShouldEqual, 2)
	})

	Convey("Error sending create payment request", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := createMockCheckoutSession(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil)
		mock.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := session.Checkout(ctx)

		kind, _ := KindOf(err)
		So(kind, ShouldEqual, TransportError)
		So(session.ErrorMessage(), ShouldEqual, "timeout")
	})

	Convey("No approval link in response", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := createMockCheckoutSession(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil)
		mock.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(Response{"id": "PAY-1"}, nil)

		result, err := session.Checkout(ctx)

		So(result, ShouldBeNil)
		kind, _ := KindOf(err)
		So(kind, ShouldEqual, MissingField)
	})

	Convey("Successfully create payment", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := createMockCheckoutSession(mock).SetCurrency("usd").SetDiscount(d("3")).SetShipping(d("1.5")).SetTax(d("0.75"))
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil)

		var sent models.OutgoingPayPalPaymentRequest
		mock.EXPECT().Send(gomock.Any(), "POST", "/payments/payment", fixtures.AccessToken, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string, payload interface{}) (Response, error) {
				sent = payload.(models.OutgoingPayPalPaymentRequest)
				return createdResponse(), nil
			})

		result, err := session.Checkout(ctx)

		So(err, ShouldBeNil)
		So(result.PaymentID, ShouldEqual, "PAY-1")
		So(result.ApprovalURL, ShouldContainSubstring, "token=EC-1")

		So(sent.Intent, ShouldEqual, "sale")
		So(sent.Payer.PaymentMethod, ShouldEqual, "paypal")
		So(sent.RedirectURLs.ReturnURL, ShouldEqual, "http://localhost/checkout/success")
		So(sent.RedirectURLs.CancelURL, ShouldEqual, "http://localhost/checkout/cancel")
		amount := sent.Transactions[0].Amount
		So(amount.Currency, ShouldEqual, "USD")
		So(amount.Total, ShouldEqual, "19.25")
		So(amount.Details, ShouldResemble, models.Details{Subtotal: "20.00", Discount: "3.00", Shipping: "1.50", Tax: "0.75"})
		items := sent.Transactions[0].ItemList.Items
		So(len(items), ShouldEqual, 2)
		So(items[1], ShouldResemble, models.Item{Name: "Item 2", Price: "5", Currency: "USD", Quantity: 2})
	})

	Convey("Items passed to checkout replace added items", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := createMockCheckoutSession(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil)

		var sent models.OutgoingPayPalPaymentRequest
		mock.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string, payload interface{}) (Response, error) {
				sent = payload.(models.OutgoingPayPalPaymentRequest)
				return createdResponse(), nil
			})

		_, err := session.Checkout(ctx, item("Only", "7.50", 1))

		So(err, ShouldBeNil)
		So(len(sent.Transactions[0].ItemList.Items), ShouldEqual, 1)
		So(sent.Transactions[0].Amount.Total, ShouldEqual, "7.50")
	})
}

func TestUnitComplete(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	ctx := context.Background()

	Convey("Buyer cancelled - nothing is sent", t, func() {
		mock := NewMockTransport(mockCtrl)
		result, err := NewCheckoutSessionWithTransport(mock).Complete(ctx, "cancel", "PAY-1", "PAYER-1")

		So(result, ShouldBeNil)
		kind, _ := KindOf(err)
		So(kind, ShouldEqual, NotApproved)
	})

	Convey("Payment id not supplied", t, func() {
		mock := NewMockTransport(mockCtrl)
		_, err := NewCheckoutSessionWithTransport(mock).Complete(ctx, "success", "", "PAYER-1")

		kind, _ := KindOf(err)
		So(kind, ShouldEqual, EmptyInput)
	})

	Convey("Approved payment", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := NewCheckoutSessionWithTransport(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil)
		mock.EXPECT().Send(gomock.Any(), "POST", "/payments/payment/PAY-1/execute", fixtures.AccessToken, models.OutgoingPayPalExecuteRequest{PayerID: "PAYER-1"}).
			Return(approvedResponse("SALE123"), nil)

		result, err := session.Complete(ctx, "SUCCESS", "PAY-1", "PAYER-1")

		So(err, ShouldBeNil)
		So(result.Outcome.Approved(), ShouldBeTrue)
		So(result.Outcome.TransactionID, ShouldEqual, "SALE123")
		So(result.Response.String("id"), ShouldEqual, fixtures.PaymentID)
		So(session.TransactionID(ctx, ""), ShouldEqual, "SALE123")
		So(session.ErrorMessage(), ShouldBeEmpty)
	})

	Convey("Failed payment", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := NewCheckoutSessionWithTransport(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil)
		mock.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(Response{"state": "failed", "message": "Instrument declined"}, nil)

		result, err := session.Complete(ctx, "success", "PAY-1", "PAYER-1")

		So(err, ShouldBeNil)
		So(result.Outcome.Approved(), ShouldBeFalse)
		So(result.Response.String("state"), ShouldEqual, "failed")
		So(session.TransactionID(ctx, ""), ShouldBeEmpty)
		So(session.ErrorMessage(), ShouldEqual, "Instrument declined")
	})

	Convey("Execute response carries an error", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := NewCheckoutSessionWithTransport(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil)
		mock.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(Response{"error": "invalid_token", "error_description": "Token signature verification failed"}, nil)

		result, err := session.Complete(ctx, "success", "PAY-1", "PAYER-1")

		So(result, ShouldBeNil)
		kind, _ := KindOf(err)
		So(kind, ShouldEqual, APIError)
		So(session.ErrorMessage(), ShouldEqual, "Token signature verification failed")
	})

	Convey("Empty execute response", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := NewCheckoutSessionWithTransport(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil)
		mock.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(Response{}, nil)

		result, err := session.Complete(ctx, "success", "PAY-1", "PAYER-1")

		So(result, ShouldBeNil)
		kind, _ := KindOf(err)
		So(kind, ShouldEqual, MissingField)
	})
}

func TestUnitLookup(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	ctx := context.Background()

	Convey("Payment id not supplied", t, func() {
		mock := NewMockTransport(mockCtrl)
		_, err := NewCheckoutSessionWithTransport(mock).Lookup(ctx, "")

		kind, _ := KindOf(err)
		So(kind, ShouldEqual, EmptyInput)
	})

	Convey("Lookup reads the payment", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := NewCheckoutSessionWithTransport(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil)
		mock.EXPECT().Send(gomock.Any(), "GET", "/payments/payment/PAY-1", fixtures.AccessToken, nil).Return(approvedResponse("SALE9"), nil)

		result, err := session.Lookup(ctx, "PAY-1")

		So(err, ShouldBeNil)
		So(result.Outcome.TransactionID, ShouldEqual, "SALE9")
	})

	Convey("State is not carried over between lookups", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := NewCheckoutSessionWithTransport(mock)
		mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil).Times(2)
		gomock.InOrder(
			mock.EXPECT().Send(gomock.Any(), "GET", "/payments/payment/PAY-1", gomock.Any(), gomock.Any()).Return(approvedResponse("SALE1"), nil),
			mock.EXPECT().Send(gomock.Any(), "GET", "/payments/payment/PAY-1", gomock.Any(), gomock.Any()).Return(Response{"id": "PAY-1"}, nil),
		)

		So(session.TransactionID(ctx, "PAY-1"), ShouldEqual, "SALE1")
		So(session.TransactionID(ctx, "PAY-1"), ShouldBeEmpty)
	})

	Convey("A failed refresh keeps the previous transaction id", t, func() {
		mock := NewMockTransport(mockCtrl)
		session := NewCheckoutSessionWithTransport(mock)
		gomock.InOrder(
			mock.EXPECT().RequestToken(gomock.Any()).Return(tokenResponse, nil),
			mock.EXPECT().RequestToken(gomock.Any()).Return(nil, errors.New("connection reset")),
		)
		mock.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(approvedResponse("SALE1"), nil)

		So(session.TransactionID(ctx, "PAY-1"), ShouldEqual, "SALE1")
		So(session.TransactionID(ctx, "PAY-1"), ShouldEqual, "SALE1")
		So(session.ErrorMessage(), ShouldEqual, "connection reset")
	})
}

func TestUnitNewCheckoutSession(t *testing.T) {

	Convey("Empty credentials are rejected", t, func() {
		session, err := NewCheckoutSession("", "", true)
		So(session, ShouldBeNil)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "error creating paypal client")

		session, err = NewCheckoutSession("client-id", "", false)
		So(session, ShouldBeNil)
		So(err, ShouldNotBeNil)
	})

	Convey("Session with credentials", t, func() {
		session, err := NewCheckoutSession("client-id", "client-secret", false)
		So(err, ShouldBeNil)
		So(session.Currency(), ShouldEqual, DefaultCurrency)
		So(session.Adjustments().DiscountDescription, ShouldEqual, DefaultDiscountDescription)
		So(session.Transport.(*PayPalTransport).Client.APIBase, ShouldEqual, LiveAPIBase)
	})
}

func TestUnitOperationError(t *testing.T) {

	Convey("Error text", t, func() {
		So((&OperationError{Kind: EmptyInput}).Error(), ShouldEqual, "empty-input")
		So((&OperationError{Kind: APIError, Message: "bad creds"}).Error(), ShouldEqual, "api-error: bad creds")
		So((&OperationError{Kind: TransportError, Err: errors.New("eof")}).Error(), ShouldEqual, "transport-error: [eof]")
	})

	Convey("Kind of other errors", t, func() {
		_, ok := KindOf(errors.New("plain"))
		So(ok, ShouldBeFalse)
	})
}
