package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает все товары каталога без фильтрации
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}		ProductResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/products/ [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context())
	if err != nil {
		p.logger.Errorf(err, "list products failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrProductResponse(products))
}

// getProduct
//
//	@Summary		Товар по идентификатору
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"Идентификатор товара"
//	@Success		200	{object}	ProductResponse
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.GetProduct(r.Context(), id)
	if err != nil {
		p.writeProductError(w, id, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создает товар, sku нормализуется, is_active всегда true
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ProductCreateRequest	true	"Данные товара"
//	@Success		201		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse	"Конфликт name/sku или ошибка валидации"
//	@Router			/products/ [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrInvalidRequestBody)
		return
	}

	priceCents, err := parsePriceToCents(req.Price.String())
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.CreateProduct(
		r.Context(),
		usecase.NewCreateProductReq(req.Name, req.SKU, req.Quantity, priceCents, req.CategoryID),
	)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProduct
//
//	@Summary		Частичное обновление товара
//	@Description	Применяет только непустые поля запроса; нулевые значения игнорируются
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Идентификатор товара"
//	@Param			request	body		ProductUpdateRequest	true	"Патч товара"
//	@Success		200		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse	"Нарушение ограничений хранилища"
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id} [patch]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	var req ProductUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrInvalidRequestBody)
		return
	}

	priceCents, err := parsePriceToCents(req.Price.String())
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.UpdateProduct(
		r.Context(),
		id,
		usecase.NewUpdateProductReq(req.Name, req.SKU, req.Quantity, req.IsActive, priceCents, req.CategoryID),
	)
	if err != nil {
		p.writeProductError(w, id, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Description	Удаляет товар и возвращает его последнее состояние
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"Идентификатор товара"
//	@Success		200	{object}	ProductResponse
//	@Failure		400	{object}	ErrorResponse	"Нарушение ограничений хранилища"
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.DeleteProduct(r.Context(), id)
	if err != nil {
		p.writeProductError(w, id, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// writeProductError пишет ответ об ошибке, дополняя NotFound идентификатором товара.
func (p *ProductHandler) writeProductError(w http.ResponseWriter, id int64, err error) {
	p.logger.Warnf("%s", err.Error())

	if errors.Is(err, e.ErrProductNotFound) {
		WriteErrorMessage(w, http.StatusNotFound, fmt.Sprintf("product with id %d not found", id))
		return
	}

	WriteError(w, err)
}
