package shipments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/broker/messages"
	cachemocks "github.com/BearBump/SalesTrack/internal/cache/mocks"
	"github.com/BearBump/SalesTrack/internal/carriers"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/BearBump/SalesTrack/internal/storage/pgstore"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	shipmentsmocks "github.com/BearBump/SalesTrack/internal/services/shipments/mocks"
)

var fixedNow = time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite

	repo  *shipmentsmocks.MockRepository
	pub   *shipmentsmocks.MockPublisher
	blobs *shipmentsmocks.MockBlobStore
	cache *cachemocks.MockBytesCache
	svc   *Service
	seq   int
}

func (s *ServiceSuite) SetupTest() {
	s.repo = &shipmentsmocks.MockRepository{}
	s.pub = &shipmentsmocks.MockPublisher{}
	s.blobs = &shipmentsmocks.MockBlobStore{}
	s.cache = &cachemocks.MockBytesCache{}
	s.seq = 0
	s.svc = New(s.repo, carriers.NewDefault(), zap.NewNop()).
		WithPublisher(s.pub).
		WithBlobStore(s.blobs).
		WithCache(s.cache, 10*time.Minute)
	s.svc.now = func() time.Time { return fixedNow }
	s.svc.newID = func() string {
		s.seq++
		return fmt.Sprintf("id-%d", s.seq)
	}
}

func (s *ServiceSuite) expectInvalidate(orderID string) {
	s.cache.On("Delete", mock.Anything, "order:"+orderID+":tracking").Return(nil).Once()
}

func (s *ServiceSuite) TestUpdateTracking_DetectsCarrier() {
	s.repo.On("ShipOrder", mock.Anything, mock.MatchedBy(func(u models.ShipmentUpdate) bool {
		return u.OrderID == "o1" && u.Carrier == "ups" &&
			u.TrackingURL == "https://www.ups.com/track?tracknum=1Z999AA10123456784" &&
			u.ShippedAt.Equal(fixedNow) &&
			u.Event != nil && u.Event.EventType == models.EventShipped && u.Event.Description == "Shipped via UPS"
	})).Return(&models.Order{ID: "o1", Status: models.OrderShipped, Carrier: "ups", TrackingNumber: "1Z999AA10123456784"}, nil).Once()
	s.expectInvalidate("o1")
	s.pub.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(ev messages.OrderEventMessage) bool {
		return ev.Type == messages.OrderShipped && ev.Carrier == "ups"
	})).Return(nil).Once()

	o, err := s.svc.UpdateTracking(context.Background(), "o1", models.TrackingUpdateInput{TrackingNumber: " 1Z999AA10123456784 "})
	s.Require().NoError(err)
	s.Require().Equal(models.OrderShipped, o.Status)
	s.repo.AssertExpectations(s.T())
	s.cache.AssertExpectations(s.T())
	s.pub.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestUpdateTracking_UndetectableShipsWithoutCarrier() {
	s.repo.On("ShipOrder", mock.Anything, mock.MatchedBy(func(u models.ShipmentUpdate) bool {
		return u.Carrier == "" && u.TrackingURL == "" && u.Event.Description == "Shipment created"
	})).Return(&models.Order{ID: "o1", Status: models.OrderShipped}, nil).Once()
	s.expectInvalidate("o1")
	s.pub.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := s.svc.UpdateTracking(context.Background(), "o1", models.TrackingUpdateInput{TrackingNumber: "ABC"})
	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestUpdateTracking_UnknownExplicitCarrier() {
	_, err := s.svc.UpdateTracking(context.Background(), "o1", models.TrackingUpdateInput{
		TrackingNumber: "1Z999AA10123456784", Carrier: "pigeon",
	})
	s.Require().ErrorIs(err, apperr.ErrNotFound)
	s.repo.AssertNotCalled(s.T(), "ShipOrder", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestUpdateTracking_ExplicitCarrierWins() {
	s.repo.On("ShipOrder", mock.Anything, mock.MatchedBy(func(u models.ShipmentUpdate) bool {
		return u.Carrier == "dhl" && u.CarrierService == "Express"
	})).Return(&models.Order{ID: "o1", Status: models.OrderShipped}, nil).Once()
	s.expectInvalidate("o1")
	s.pub.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	_, err := s.svc.UpdateTracking(context.Background(), "o1", models.TrackingUpdateInput{
		TrackingNumber: "1Z999AA10123456784", Carrier: "DHL", Service: "Express",
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestUpdateTracking_Validation() {
	_, err := s.svc.UpdateTracking(context.Background(), "o1", models.TrackingUpdateInput{TrackingNumber: "   "})
	s.Require().ErrorIs(err, apperr.ErrValidation)

	_, err = s.svc.UpdateTracking(context.Background(), "", models.TrackingUpdateInput{TrackingNumber: "X"})
	s.Require().ErrorIs(err, apperr.ErrValidation)
}

func (s *ServiceSuite) TestUpdateTracking_DeliveredConflict() {
	s.repo.On("ShipOrder", mock.Anything, mock.Anything).
		Return(nil, apperr.Conflict("order o1 is already delivered")).Once()

	_, err := s.svc.UpdateTracking(context.Background(), "o1", models.TrackingUpdateInput{TrackingNumber: "1234567890"})
	s.Require().ErrorIs(err, apperr.ErrConflict)
	s.pub.AssertNotCalled(s.T(), "PublishOrderEvent", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestAddEvent() {
	ts := fixedNow.Add(-time.Hour)
	s.repo.On("AppendEvent", mock.Anything, mock.MatchedBy(func(e *models.TrackingEvent) bool {
		return e.OrderID == "o1" && e.EventType == "in_transit" && e.Source == "manual" &&
			e.OccurredAt.Equal(ts) && e.Location == "Memphis, TN"
	})).Return(nil).Once()
	s.expectInvalidate("o1")
	s.pub.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()

	e, err := s.svc.AddEvent(context.Background(), "o1", models.EventInput{
		EventType: "in_transit", Location: "Memphis, TN", Timestamp: &ts,
	})
	s.Require().NoError(err)
	s.Require().Equal("id-1", e.ID)
}

func (s *ServiceSuite) TestAddEvent_DefaultsTimestampAndUnknownOrder() {
	s.repo.On("AppendEvent", mock.Anything, mock.MatchedBy(func(e *models.TrackingEvent) bool {
		return e.OccurredAt.Equal(fixedNow)
	})).Return(apperr.NotFound("order missing")).Once()

	_, err := s.svc.AddEvent(context.Background(), "missing", models.EventInput{EventType: "note"})
	s.Require().ErrorIs(err, apperr.ErrNotFound)

	_, err = s.svc.AddEvent(context.Background(), "o1", models.EventInput{})
	s.Require().ErrorIs(err, apperr.ErrValidation)
}

func (s *ServiceSuite) TestRecordDeliveryProof_UploadsAndDelivers() {
	s.repo.On("GetOrder", mock.Anything, "o1").Return(&models.Order{ID: "o1"}, nil).Once()
	s.repo.On("GetDeliveryProof", mock.Anything, "o1").Return(nil, nil).Once()
	s.blobs.On("Put", mock.Anything, "proofs/o1/id-1-signature", []byte("sig")).
		Return("http://blobs/proofs/o1/id-1-signature", nil).Once()
	s.blobs.On("Put", mock.Anything, "proofs/o1/id-1-photo", []byte("img")).
		Return("http://blobs/proofs/o1/id-1-photo", nil).Once()
	s.repo.On("RecordDelivery", mock.Anything,
		mock.MatchedBy(func(p *models.DeliveryProof) bool {
			return p.ProofType == models.ProofSignatureAndPhoto && p.DeliveredAt.Equal(fixedNow) &&
				p.SignatureURL != "" && p.PhotoURL != ""
		}),
		mock.MatchedBy(func(e *models.TrackingEvent) bool {
			return e.EventType == models.EventDelivered && e.Description == "Delivered to Jane Doe"
		}),
	).Return(&models.Order{ID: "o1", Status: models.OrderDelivered}, nil).Once()
	s.expectInvalidate("o1")
	s.pub.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(ev messages.OrderEventMessage) bool {
		return ev.Type == messages.OrderDelivered
	})).Return(nil).Once()

	p, err := s.svc.RecordDeliveryProof(context.Background(), "o1", models.DeliveryProofInput{
		RecipientName: "Jane Doe", Signature: []byte("sig"), Photo: []byte("img"),
	})
	s.Require().NoError(err)
	s.Require().Equal("http://blobs/proofs/o1/id-1-photo", p.PhotoURL)
	s.repo.AssertExpectations(s.T())
	s.blobs.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestRecordDeliveryProof_NoRecipient() {
	s.repo.On("GetOrder", mock.Anything, "o1").Return(&models.Order{ID: "o1"}, nil).Once()
	s.repo.On("GetDeliveryProof", mock.Anything, "o1").Return(nil, nil).Once()
	s.repo.On("RecordDelivery", mock.Anything,
		mock.MatchedBy(func(p *models.DeliveryProof) bool { return p.ProofType == models.ProofNone }),
		mock.MatchedBy(func(e *models.TrackingEvent) bool { return e.Description == "Package delivered" }),
	).Return(&models.Order{ID: "o1", Status: models.OrderDelivered}, nil).Once()
	s.expectInvalidate("o1")
	s.pub.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := s.svc.RecordDeliveryProof(context.Background(), "o1", models.DeliveryProofInput{})
	s.Require().NoError(err)
	s.blobs.AssertNotCalled(s.T(), "Put", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestRecordDeliveryProof_SecondProofConflict() {
	s.repo.On("GetOrder", mock.Anything, "o1").Return(&models.Order{ID: "o1"}, nil).Once()
	s.repo.On("GetDeliveryProof", mock.Anything, "o1").Return(&models.DeliveryProof{ID: "p1"}, nil).Once()

	_, err := s.svc.RecordDeliveryProof(context.Background(), "o1", models.DeliveryProofInput{Signature: []byte("x")})
	s.Require().ErrorIs(err, apperr.ErrConflict)
	s.blobs.AssertNotCalled(s.T(), "Put", mock.Anything, mock.Anything, mock.Anything)
	s.repo.AssertNotCalled(s.T(), "RecordDelivery", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestRecordDeliveryProof_UnknownOrderUploadsNothing() {
	s.repo.On("GetOrder", mock.Anything, "missing").Return(nil, apperr.NotFound("order missing not found")).Once()

	_, err := s.svc.RecordDeliveryProof(context.Background(), "missing", models.DeliveryProofInput{
		Signature: []byte("sig"), Photo: []byte("img"),
	})
	s.Require().ErrorIs(err, apperr.ErrNotFound)
	s.blobs.AssertNotCalled(s.T(), "Put", mock.Anything, mock.Anything, mock.Anything)
	s.repo.AssertNotCalled(s.T(), "RecordDelivery", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestRecordDeliveryProof_UploadFailure() {
	s.repo.On("GetOrder", mock.Anything, "o1").Return(&models.Order{ID: "o1"}, nil).Once()
	s.repo.On("GetDeliveryProof", mock.Anything, "o1").Return(nil, nil).Once()
	s.blobs.On("Put", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("minio down")).Once()

	_, err := s.svc.RecordDeliveryProof(context.Background(), "o1", models.DeliveryProofInput{Photo: []byte("img")})
	s.Require().ErrorIs(err, apperr.ErrBackendUnavailable)
	s.repo.AssertNotCalled(s.T(), "RecordDelivery", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestGetOrderTracking_CacheHit_NoDB() {
	v := models.OrderTracking{Order: &models.Order{ID: "o1"}, Events: []*models.TrackingEvent{{ID: "e1"}}}
	b, _ := json.Marshal(v)
	s.cache.On("Get", mock.Anything, "order:o1:tracking").Return(b, true, nil).Once()

	out, err := s.svc.GetOrderTracking(context.Background(), "o1")
	s.Require().NoError(err)
	s.Require().Equal("o1", out.Order.ID)
	s.Require().Len(out.Events, 1)
	s.repo.AssertNotCalled(s.T(), "GetOrder", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestGetOrderTracking_MissLoadsAndCaches() {
	s.cache.On("Get", mock.Anything, "order:o1:tracking").Return(nil, false, nil).Once()
	s.repo.On("GetOrder", mock.Anything, "o1").Return(&models.Order{ID: "o1"}, nil).Once()
	s.repo.On("ListEvents", mock.Anything, "o1", 0).Return(nil, nil).Once()
	s.repo.On("GetDeliveryProof", mock.Anything, "o1").Return(nil, nil).Once()
	s.cache.On("Set", mock.Anything, "order:o1:tracking", mock.Anything, 10*time.Minute).Return(nil).Once()

	out, err := s.svc.GetOrderTracking(context.Background(), "o1")
	s.Require().NoError(err)
	s.Require().NotNil(out.Events)
	s.Require().Empty(out.Events)
	s.Require().Nil(out.DeliveryProof)
	s.Require().False(out.Degraded)
	s.cache.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestGetOrderTracking_CacheErrorFallsBackToDB() {
	svc := New(s.repo, nil, zap.NewNop()).WithCache(s.cache, time.Minute)
	s.cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, errors.New("redis down")).Once()
	s.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
	s.repo.On("GetOrder", mock.Anything, "o1").Return(&models.Order{ID: "o1"}, nil).Once()
	s.repo.On("ListEvents", mock.Anything, "o1", 0).Return([]*models.TrackingEvent{{ID: "e1"}}, nil).Once()
	s.repo.On("GetDeliveryProof", mock.Anything, "o1").Return(nil, nil).Once()

	out, err := svc.GetOrderTracking(context.Background(), "o1")
	s.Require().NoError(err)
	s.Require().Len(out.Events, 1)
}

func (s *ServiceSuite) TestGetOrderTracking_NotFound() {
	svc := New(s.repo, nil, zap.NewNop())
	s.repo.On("GetOrder", mock.Anything, "missing").Return(nil, apperr.NotFound("order missing")).Once()

	_, err := svc.GetOrderTracking(context.Background(), "missing")
	s.Require().ErrorIs(err, apperr.ErrNotFound)
}

func (s *ServiceSuite) TestGetOrderTracking_UnavailableDegrades() {
	svc := New(s.repo, nil, zap.NewNop())
	s.repo.On("GetOrder", mock.Anything, "o1").
		Return(nil, apperr.Unavailable(errors.New("relation does not exist"), "select order")).Once()

	out, err := svc.GetOrderTracking(context.Background(), "o1")
	s.Require().NoError(err)
	s.Require().True(out.Degraded)
	s.Require().NotEmpty(out.Message)
	s.Require().NotNil(out.Events)
}

func (s *ServiceSuite) TestGetOrderTracking_BackendErrorSurfaces() {
	svc := New(s.repo, nil, zap.NewNop())
	s.repo.On("GetOrder", mock.Anything, "o1").Return(&models.Order{ID: "o1"}, nil).Once()
	s.repo.On("ListEvents", mock.Anything, "o1", 0).
		Return(nil, apperr.Backend(errors.New("syntax"), "select events")).Once()

	_, err := svc.GetOrderTracking(context.Background(), "o1")
	s.Require().ErrorIs(err, apperr.ErrBackend)
}

func (s *ServiceSuite) TestApplyCarrierUpdate_MapsEvents() {
	loc := "Louisville, KY"
	checked := fixedNow.Add(-time.Minute)
	msg := messages.CarrierUpdate{
		OrderID: "o1", Carrier: "ups", TrackingNumber: "1Z", CheckedAt: checked,
		NextCheckAt: checked.Add(time.Hour),
		Events: []messages.CarrierEvent{
			{Status: "IN_TRANSIT", StatusRaw: "Departed", EventTime: checked.Add(-2 * time.Hour), Location: &loc},
			{Status: "OUT_FOR_DELIVERY", StatusRaw: "On vehicle", EventTime: checked.Add(-time.Hour)},
		},
	}
	s.repo.On("ApplyCarrierSync", mock.Anything, mock.MatchedBy(func(u pgstore.CarrierSync) bool {
		return u.OrderID == "o1" && len(u.Events) == 2 &&
			u.Events[0].EventType == models.EventInTransit && u.Events[0].Location == loc &&
			u.Events[1].EventType == models.EventOutForDelivery && u.Events[1].Status == "On vehicle" &&
			u.NextCheckAt.Equal(checked.Add(time.Hour))
	})).Return(2, nil).Once()
	s.expectInvalidate("o1")
	s.pub.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(ev messages.OrderEventMessage) bool {
		return ev.Type == messages.OrderEvent && ev.EventType == models.EventOutForDelivery
	})).Return(nil).Once()

	s.Require().NoError(s.svc.ApplyCarrierUpdate(context.Background(), msg))
	s.repo.AssertExpectations(s.T())
	s.pub.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestApplyCarrierUpdate_DuplicatesAreQuiet() {
	s.repo.On("ApplyCarrierSync", mock.Anything, mock.MatchedBy(func(u pgstore.CarrierSync) bool {
		return u.CheckedAt.Equal(fixedNow) && u.NextCheckAt.Equal(fixedNow.Add(time.Hour))
	})).Return(0, nil).Once()

	err := s.svc.ApplyCarrierUpdate(context.Background(), messages.CarrierUpdate{
		OrderID: "o1",
		Events:  []messages.CarrierEvent{{Status: "IN_TRANSIT", EventTime: fixedNow}},
	})
	s.Require().NoError(err)
	s.cache.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
	s.pub.AssertNotCalled(s.T(), "PublishOrderEvent", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestApplyCarrierUpdate_Validation() {
	err := s.svc.ApplyCarrierUpdate(context.Background(), messages.CarrierUpdate{})
	s.Require().ErrorIs(err, apperr.ErrValidation)
}

func (s *ServiceSuite) TestRefreshTracking() {
	s.repo.On("RefreshShipment", mock.Anything, "o1", fixedNow).Return(nil).Once()
	s.Require().NoError(s.svc.RefreshTracking(context.Background(), "o1"))
	s.Require().ErrorIs(s.svc.RefreshTracking(context.Background(), ""), apperr.ErrValidation)
}

func (s *ServiceSuite) TestCarriers() {
	s.Require().Equal("ups", s.svc.Carriers()[0].Code)
	code, ok := s.svc.DetectCarrier("TBA123456789012")
	s.Require().True(ok)
	s.Require().Equal("amazon", code)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}
