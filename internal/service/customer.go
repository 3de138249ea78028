package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository"
	"github.com/ParsimonyGit/shipstation-integration/internal/shipstation"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

const (
	defaultCustomerGroup = "ShipStation"
	defaultTerritory     = "United States"
)

type customerService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCustomerService creates a new customer/address resolver
func NewCustomerService(repos *repository.Repositories, logger *zap.Logger) *customerService {
	return &customerService{
		repos:  repos,
		logger: logger,
	}
}

// customerKey resolves the customer lookup key: explicit hub customer id,
// then buyer email, then ship-to display name, then a generated token. The
// generated token is not persisted across calls for the same anonymous
// buyer; each anonymous order may resolve to a fresh customer.
func customerKey(order *shipstation.Order) string {
	if order.CustomerID != 0 {
		return strconv.FormatInt(order.CustomerID, 10)
	}
	if order.CustomerEmail != "" {
		return order.CustomerEmail
	}
	if order.ShipTo != nil && order.ShipTo.Name != "" {
		return order.ShipTo.Name
	}
	return strings.ToUpper(uuid.NewString()[:10])
}

// ResolveCustomer finds or creates the customer for an incoming order. An
// existing customer is returned unchanged; no fields are overwritten.
func (s *customerService) ResolveCustomer(ctx context.Context, order *shipstation.Order) (*domain.Customer, error) {
	key := customerKey(order)

	exists, err := s.repos.Customers.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return s.repos.Customers.Get(ctx, key)
	}

	customer := &domain.Customer{
		Name:                  key,
		ShipstationCustomerID: key,
		CustomerType:          "Individual",
		CustomerGroup:         defaultCustomerGroup,
		Territory:             defaultTerritory,
	}
	if err := s.repos.Customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	if contact := s.resolveContact(ctx, order, customer.Name); contact != nil {
		customer.PrimaryContact = contact.Name
	}

	if order.ShipTo != nil && order.ShipTo.Street1 != "" {
		if addr := s.createAddress(ctx, order.ShipTo, customer.Name, order.CustomerEmail, domain.AddressTypeShipping); addr != nil {
			customer.PrimaryAddress = addr.Name
		}
	}
	if order.BillTo != nil && order.BillTo.Street1 != "" {
		s.createAddress(ctx, order.BillTo, customer.Name, order.CustomerEmail, domain.AddressTypeBilling)
	}

	// PII hiccups must not block order capture; the save is best-effort.
	if err := s.repos.Customers.Update(ctx, customer); err != nil {
		s.logger.Error("Error saving Shipstation Customer",
			zap.String("customer", customer.Name),
			zap.Error(err),
		)
	}
	return customer, nil
}

// UpdateCustomerDetails re-binds contact and addresses onto an existing
// sales order, used when a marketplace integration created the order first.
func (s *customerService) UpdateCustomerDetails(ctx context.Context, so *domain.SalesOrder, order *shipstation.Order) error {
	if contact := s.resolveContact(ctx, order, so.Customer); contact != nil {
		so.ContactPerson = contact.Name
	}
	if order.OrderID != 0 {
		so.ShipstationOrderID = strconv.FormatInt(order.OrderID, 10)
	}
	so.HasPII = true

	if order.BillTo != nil && order.BillTo.Street1 != "" {
		if so.CustomerAddress != "" {
			s.updateAddress(ctx, order.BillTo, so.CustomerAddress, order.CustomerEmail, domain.AddressTypeBilling)
		} else if addr := s.createAddress(ctx, order.BillTo, so.Customer, order.CustomerEmail, domain.AddressTypeBilling); addr != nil {
			so.CustomerAddress = addr.Name
		}
	}
	if order.ShipTo != nil && order.ShipTo.Street1 != "" {
		if so.ShippingAddress != "" {
			s.updateAddress(ctx, order.ShipTo, so.ShippingAddress, order.CustomerEmail, domain.AddressTypeShipping)
		} else if addr := s.createAddress(ctx, order.ShipTo, so.Customer, order.CustomerEmail, domain.AddressTypeShipping); addr != nil {
			so.ShippingAddress = addr.Name
		}
	}

	return s.repos.SalesOrders.Update(ctx, so)
}

// GetBillingAddress returns the name of the customer's billing address.
func (s *customerService) GetBillingAddress(ctx context.Context, customer string) string {
	address, err := s.repos.Addresses.FindByCustomerLink(ctx, customer, domain.AddressTypeBilling)
	if err != nil {
		return ""
	}
	return address.Name
}

// resolveContact matches a contact by email or creates one from the order's
// bill-to name. Failures are logged, never raised.
func (s *customerService) resolveContact(ctx context.Context, order *shipstation.Order, customer string) *domain.Contact {
	if order.CustomerEmail != "" {
		contact, err := s.repos.Contacts.FindByEmail(ctx, order.CustomerEmail)
		if err == nil {
			return contact
		}
		if !errors.IsNotFound(err) {
			s.logger.Error("Error looking up Shipstation Contact", zap.Error(err))
			return nil
		}
	}

	personName := "Not Provided"
	if order.BillTo != nil && order.BillTo.Name != "" {
		personName = order.BillTo.Name
	} else if order.ShipTo != nil && order.ShipTo.Name != "" {
		personName = order.ShipTo.Name
	}
	first, last := splitPersonName(sanitizePersonName(personName))

	contact := &domain.Contact{
		Name:         docName("CONT"),
		FirstName:    first,
		LastName:     last,
		EmailID:      order.CustomerEmail,
		CustomerLink: customer,
	}
	if order.BillTo != nil {
		contact.Phone = order.BillTo.Phone
	}
	if err := s.repos.Contacts.Create(ctx, contact); err != nil {
		s.logger.Error("Error saving Shipstation Contact",
			zap.String("customer", customer),
			zap.Error(err),
		)
		return nil
	}
	return contact
}

func (s *customerService) createAddress(ctx context.Context, hubAddr *shipstation.Address, customer, email string, addressType domain.AddressType) *domain.Address {
	address := &domain.Address{
		Name:         docName("ADDR"),
		AddressType:  addressType,
		CustomerLink: customer,
	}
	return s.saveAddress(ctx, hubAddr, address, email, false)
}

func (s *customerService) updateAddress(ctx context.Context, hubAddr *shipstation.Address, addressName, email string, addressType domain.AddressType) *domain.Address {
	address, err := s.repos.Addresses.Get(ctx, addressName)
	if err != nil {
		s.logger.Error("Error loading Shipstation Address",
			zap.String("address", addressName),
			zap.Error(err),
		)
		return nil
	}
	address.AddressType = addressType
	return s.saveAddress(ctx, hubAddr, address, email, true)
}

// saveAddress populates and persists an address. The country code must
// translate through the country table or the save fails softly.
func (s *customerService) saveAddress(ctx context.Context, hubAddr *shipstation.Address, address *domain.Address, email string, update bool) *domain.Address {
	address.AddressTitle = hubAddr.Name
	address.Line1 = hubAddr.Street1
	address.Line2 = hubAddr.Street2
	address.Line3 = hubAddr.Street3
	address.City = hubAddr.City
	address.State = hubAddr.State
	address.PinCode = hubAddr.PostalCode
	address.Phone = hubAddr.Phone
	address.Email = email

	country, err := s.repos.Countries.NameByCode(ctx, hubAddr.Country)
	if err != nil {
		s.logger.Error("Error saving Shipstation Address",
			zap.String("country_code", hubAddr.Country),
			zap.Error(err),
		)
		return nil
	}
	address.Country = country

	if update {
		err = s.repos.Addresses.Update(ctx, address)
	} else {
		err = s.repos.Addresses.Create(ctx, address)
	}
	if err != nil {
		s.logger.Error("Error saving Shipstation Address",
			zap.String("address", address.Name),
			zap.Error(err),
		)
		return nil
	}
	return address
}

// sanitizePersonName strips angle brackets, which trip address/contact
// validation downstream.
func sanitizePersonName(name string) string {
	name = strings.ReplaceAll(name, "<", "")
	name = strings.ReplaceAll(name, ">", "")
	return strings.TrimSpace(name)
}

func splitPersonName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "Not Provided", ""
	}
	first = parts[0]
	if len(parts) > 1 {
		last = strings.Join(parts[1:], " ")
	}
	return first, last
}
