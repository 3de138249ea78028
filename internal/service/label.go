package service

import (
	"context"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

const labelFolder = "Home/Shipstation Labels"

// Label sources; only delivery notes get tracking details written back.
const (
	SourceDeliveryNote = "Delivery Note"
	SourceSalesOrder   = "Sales Order"
)

// LabelRequest describes a label generation action from the UI.
type LabelRequest struct {
	Account     string  `json:"account" binding:"required"`
	SourceType  string  `json:"source_type" binding:"required"`
	SourceName  string  `json:"source_name" binding:"required"`
	Carrier     string  `json:"carrier" binding:"required"`
	Service     string  `json:"service" binding:"required"`
	Package     string  `json:"package"`
	GrossWeight float64 `json:"gross_weight" binding:"required"`
}

type labelService struct {
	repos   *repository.Repositories
	logger  *zap.Logger
	clients HubClientFactory
}

// NewLabelService creates a new label service
func NewLabelService(repos *repository.Repositories, logger *zap.Logger, clients HubClientFactory) *labelService {
	return &labelService{
		repos:   repos,
		logger:  logger,
		clients: clients,
	}
}

// CreateLabel generates a shipping label for an ERP document, attaches the
// PDF, and writes tracking details back onto delivery-note sources. Hub
// business errors surface with the hub's own message.
func (s *labelService) CreateLabel(ctx context.Context, req LabelRequest) (*shipstation.Label, error) {
	account, err := s.repos.Accounts.Get(ctx, req.Account)
	if err != nil {
		return nil, err
	}
	if !account.Enabled {
		return nil, errors.NewValidation("account is disabled")
	}
	client := s.clients(account.APIKey, account.APISecret)

	so, note, err := s.loadSource(ctx, req)
	if err != nil {
		return nil, err
	}

	order, err := s.hubOrder(ctx, client, so)
	if err != nil {
		return nil, err
	}

	carrierCode, serviceCode, packageCode := account.GetCodes(req.Carrier, req.Service, req.Package)
	if carrierCode != "" && serviceCode != "" {
		order.CarrierCode = carrierCode
		order.ServiceCode = serviceCode
		order.PackageCode = packageCode
	}

	// The hub rejects ship dates in the past.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if order.ShipDate.IsZero() || order.ShipDate.Before(today) {
		shipDate := so.DeliveryDate
		if shipDate.IsZero() || shipDate.Before(today) {
			shipDate = today
		}
		order.ShipDate = shipstation.Time{Time: shipDate}
	}

	order.Weight = &shipstation.Weight{Value: req.GrossWeight, Units: "pounds"}

	label, err := client.CreateLabelForOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	pdf, err := base64.StdEncoding.DecodeString(label.LabelData)
	if err != nil {
		return nil, errors.NewValidation("the label payload could not be decoded")
	}

	attachment := &domain.Attachment{
		Name:           docName("FILE"),
		FileName:       req.SourceName + "_shipstation.pdf",
		Content:        pdf,
		AttachedToType: req.SourceType,
		AttachedToName: req.SourceName,
		Folder:         labelFolder,
		IsPrivate:      true,
	}
	if err := s.repos.Attachments.Create(ctx, attachment); err != nil {
		return nil, err
	}

	if note != nil {
		note.ShipstationShipmentID = strconv.FormatInt(label.ShipmentID, 10)
		note.Carrier = strings.ToUpper(label.CarrierCode)
		note.CarrierService = strings.ToUpper(label.ServiceCode)
		note.TrackingNumber = label.TrackingNumber
		if err := s.repos.DeliveryNotes.Update(ctx, note); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Created shipping label",
		zap.String("source", req.SourceName),
		zap.Int64("shipstation_shipment_id", label.ShipmentID),
		zap.String("tracking_number", label.TrackingNumber),
	)
	return label, nil
}

// loadSource resolves the originating document down to its sales order,
// which carries the addresses and hub order reference.
func (s *labelService) loadSource(ctx context.Context, req LabelRequest) (*domain.SalesOrder, *domain.DeliveryNote, error) {
	switch req.SourceType {
	case SourceSalesOrder:
		so, err := s.repos.SalesOrders.Get(ctx, req.SourceName)
		return so, nil, err
	case SourceDeliveryNote:
		note, err := s.repos.DeliveryNotes.Get(ctx, req.SourceName)
		if err != nil {
			return nil, nil, err
		}
		var so *domain.SalesOrder
		if note.SalesOrder != "" {
			so, err = s.repos.SalesOrders.Get(ctx, note.SalesOrder)
		} else {
			so, err = s.repos.SalesOrders.FindByExternalID(ctx, note.ShipstationOrderID,
				domain.DocStatusDraft, domain.DocStatusSubmitted)
		}
		return so, note, err
	default:
		return nil, nil, errors.NewValidation("unsupported label source type")
	}
}

// hubOrder reuses the hub's own order when the document references one, else
// builds a fresh order payload from the ERP addresses.
func (s *labelService) hubOrder(ctx context.Context, client HubClient, so *domain.SalesOrder) (*shipstation.Order, error) {
	if so.ShipstationOrderID != "" {
		orderID, err := strconv.ParseInt(so.ShipstationOrderID, 10, 64)
		if err == nil {
			return client.GetOrder(ctx, orderID)
		}
	}

	order := &shipstation.Order{
		OrderNumber: so.Name,
		OrderDate:   shipstation.Time{Time: so.TransactionDate},
		ShipDate:    shipstation.Time{Time: so.DeliveryDate},
		OrderStatus: "awaiting_shipment",
		PackageCode: "package",
	}

	shipTo, err := s.hubAddress(ctx, so.ShippingAddress, "")
	if err != nil {
		return nil, err
	}
	order.ShipTo = shipTo

	contactName := ""
	if so.ContactPerson != "" {
		contact, err := s.repos.Contacts.Get(ctx, so.ContactPerson)
		if err == nil {
			contactName = strings.TrimSpace(contact.FirstName + " " + contact.LastName)
		}
	}
	billTo, err := s.hubAddress(ctx, so.CustomerAddress, contactName)
	if err != nil {
		return nil, err
	}
	order.BillTo = billTo

	return order, nil
}

// hubAddress converts an ERP address to the hub's format. Either a person
// name or an address title is required, and the country must translate back
// to its ISO code.
func (s *labelService) hubAddress(ctx context.Context, addressName, personName string) (*shipstation.Address, error) {
	if addressName == "" {
		return nil, errors.NewValidation("the document has no address to ship from")
	}
	address, err := s.repos.Addresses.Get(ctx, addressName)
	if err != nil {
		return nil, err
	}
	if personName == "" && address.AddressTitle == "" {
		return nil, errors.NewValidation("please edit this address to have either a person's name or address title")
	}

	name := personName
	company := ""
	if name == "" {
		name = address.AddressTitle
	} else {
		company = address.AddressTitle
	}

	countryCode, err := s.repos.Countries.CodeByName(ctx, address.Country)
	if err != nil {
		return nil, err
	}

	return &shipstation.Address{
		Name:       name,
		Company:    company,
		Street1:    address.Line1,
		Street2:    address.Line2,
		City:       address.City,
		State:      address.State,
		PostalCode: address.PinCode,
		Phone:      address.Phone,
		Country:    strings.ToUpper(countryCode),
	}, nil
}
