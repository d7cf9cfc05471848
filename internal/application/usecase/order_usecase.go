package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/application/inventory"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// OrderUseCase pedidos de la tienda en línea. Un pedido registra líneas y total con precios del
// catálogo, pero no descuenta stock: no tiene sucursal.
type OrderUseCase struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	companies repository.CompanyRepository
	txRunner  inventory.TxRunner
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository, companies repository.CompanyRepository, txRunner inventory.TxRunner) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products, companies: companies, txRunner: txRunner, now: time.Now}
}

// Checkout confirma el carrito del actor en la tienda de su empresa.
func (uc *OrderUseCase) Checkout(ctx context.Context, actor access.Actor, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	if err := access.Authorize(actor, access.OpPlaceOrder); err != nil {
		return nil, err
	}
	companyID, err := access.RequireTenant(actor)
	if err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{}
	if strings.TrimSpace(in.ClientName) == "" {
		verr.Add("client_name", "El nombre es obligatorio.")
	}
	if strings.TrimSpace(in.ClientEmail) == "" {
		verr.Add("client_email", "El email es obligatorio.")
	}
	if len(in.Items) == 0 {
		verr.Add("items", "El carrito está vacío.")
	}
	for i, it := range in.Items {
		if it.ProductID == "" {
			verr.Add(fmt.Sprintf("items[%d].product_id", i), "El producto es obligatorio.")
		}
		switch {
		case it.Quantity <= 0:
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "La cantidad debe ser mayor a cero.")
		case it.Quantity > inventory.MaxQuantity:
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "La cantidad excede el máximo permitido.")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.IsActive {
		return nil, domain.NotFound("empresa", companyID)
	}

	now := uc.now()
	userID := actor.UserID
	order := &entity.Order{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		UserID:      &userID,
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientEmail: strings.TrimSpace(in.ClientEmail),
		Status:      entity.OrderPending,
		Total:       decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, it := range in.Items {
		p, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.CompanyID != companyID {
			return nil, domain.NotFound("producto", it.ProductID)
		}
		item := entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  it.Quantity,
			Price:     p.Price,
		}
		order.Items = append(order.Items, item)
		order.Total = order.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		return repos.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// List quien gestiona pedidos ve los de su empresa; el resto sólo los propios.
func (uc *OrderUseCase) List(ctx context.Context, actor access.Actor, page dto.PageRequest) ([]dto.OrderResponse, error) {
	if err := access.AuthorizeRead(actor, access.OpManageOrders, access.OpPlaceOrder); err != nil {
		return nil, err
	}
	companyID, all, ok := access.ListScope(actor)
	if !ok {
		return []dto.OrderResponse{}, nil
	}
	userID := ""
	if !all && !access.Permits(actor.Role, access.OpManageOrders) {
		userID = actor.UserID
	}
	page.DefaultPage()
	list, err := uc.orders.ListByCompany(ctx, companyID, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// UpdateStatus avanza el estado del pedido: pending -> shipped -> delivered.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor access.Actor, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if err := access.Authorize(actor, access.OpManageOrders); err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || !access.CanAccess(actor, order.CompanyID) {
		return nil, domain.NotFound("pedido", id)
	}
	if !entity.CanTransition(order.Status, in.Status) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("No se puede pasar de %s a %s.", order.Status, in.Status))
	}
	if err := uc.orders.UpdateStatus(ctx, order.ID, in.Status); err != nil {
		return nil, err
	}
	order.Status = in.Status
	order.UpdatedAt = uc.now()
	return toOrderResponse(order), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.TransactionLineResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.TransactionLineResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Subtotal:  it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		CompanyID:   o.CompanyID,
		UserID:      o.UserID,
		ClientName:  o.ClientName,
		ClientEmail: o.ClientEmail,
		Status:      o.Status,
		Total:       o.Total,
		Items:       items,
		CreatedAt:   o.CreatedAt,
	}
}
