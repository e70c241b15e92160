package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
)

type CategoryHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewCategoryHandler(productUsecase usecase.ProductUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{productUsecase: productUsecase, logger: logger}
}

// listCategories
//
//	@Summary		Справочник категорий
//	@Description	Категории только читаются, управление ими вне сервиса
//	@Tags			categories
//	@Produce		json
//	@Success		200	{array}		CategoryResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/categories/ [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.productUsecase.ListCategories(r.Context())
	if err != nil {
		c.logger.Errorf(err, "list categories failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrCategoryResponse(categories))
}
