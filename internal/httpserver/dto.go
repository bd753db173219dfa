package httpserver

import "github.com/shopspring/decimal"

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type tagRequest struct {
	Name string `json:"name"`
}

type itemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	TagIDs      []string        `json:"tagIDs"`
}

type createOrderRequest struct {
	Description string `json:"description"`
}

type lineRequest struct {
	ItemID   string `json:"itemID"`
	Quantity int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type statusRequest struct {
	Action string `json:"action"`
}
