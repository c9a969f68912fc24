package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/amazoniatrade/marketplace/internal/logging"
	"github.com/amazoniatrade/marketplace/internal/middleware/auth"
	"github.com/amazoniatrade/marketplace/internal/models"
	"github.com/amazoniatrade/marketplace/internal/mykafka"
	"github.com/amazoniatrade/marketplace/internal/service/search"
	"github.com/amazoniatrade/marketplace/internal/store"
	"github.com/amazoniatrade/marketplace/internal/store/cache"
)

type ProductHandler struct {
	Store     *store.ProductStore
	Cache     *cache.ProductCache
	Producer  *mykafka.Producer
	ES        *elasticsearch.Client
	ESIndex   string
	UploadDir string
	BaseURL   string
}

// productView is the wire shape of a product: the stored image filename is
// resolved to a fetchable URL.
type productView struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	UserID      uint            `json:"user_id"`
}

func (h *ProductHandler) view(p models.Product) productView {
	image := ""
	if p.Image != "" {
		image = h.BaseURL + "/uploads/" + p.Image
	}
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       image,
		UserID:      p.UserID,
	}
}

// CreateProduct handles the seller-only multipart form: text fields plus an
// image file saved under the upload dir with a timestamped name.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	sellerID, ok := auth.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}

	name := c.FormValue("name")
	description := c.FormValue("description")
	if name == "" || description == "" {
		return fail(c, http.StatusBadRequest, "name and description are required")
	}

	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil || !price.IsPositive() {
		return fail(c, http.StatusBadRequest, "price must be a positive number")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "no image uploaded")
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	if err := h.saveUpload(file, filename); err != nil {
		logging.FromContext(c.Request().Context()).Error("image save failed", "error", err)
		return fail(c, http.StatusInternalServerError, "could not store image")
	}

	prod := &models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Image:       filename,
		UserID:      sellerID,
	}
	if err := h.Store.Create(c.Request().Context(), prod); err != nil {
		if errors.Is(err, store.ErrInvalidProduct) {
			return fail(c, http.StatusBadRequest, "invalid product fields")
		}
		return fail(c, http.StatusInternalServerError, "could not create product")
	}

	h.Cache.Invalidate(c.Request().Context(), prod.ID)

	if h.ES != nil {
		if err := search.IndexProduct(c.Request().Context(), h.ES, h.ESIndex, prod); err != nil {
			logging.FromContext(c.Request().Context()).Error("product index failed", "product_id", prod.ID, "error", err)
		}
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(sellerID), map[string]interface{}{
		"type":       "product_created",
		"product_id": prod.ID,
		"user_id":    sellerID,
		"name":       prod.Name,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"ok":      true,
		"message": "product created",
		"product": h.view(*prod),
	})
}

func (h *ProductHandler) saveUpload(file *multipart.FileHeader, filename string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(h.UploadDir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	items, err := h.Store.List(c.Request().Context(), c.QueryParam("searchTerm"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list products")
	}

	views := make([]productView, len(items))
	for i, p := range items {
		views[i] = h.view(p)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "products": views})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	prod, err := h.Cache.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load product")
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "product": h.view(*prod)})
}
