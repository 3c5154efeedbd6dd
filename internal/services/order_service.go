package services

import (
	"pizzadmin/internal/domain"
	"pizzadmin/internal/repos"
)

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.Orders.List()
}
