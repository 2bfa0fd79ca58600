package controllers

import (
	"net/http"
	"strconv"

	"orderhub/libs"
	"orderhub/models"
	"orderhub/repositories"
	"orderhub/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	menuRepo *repositories.MenuRepository
}

func NewProductController() *ProductController {
	return &ProductController{menuRepo: repositories.NewMenuRepository()}
}

// @Summary Create category
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param category body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.Response
// @Router /admin/categories [post]
func (ctrl *ProductController) CreateCategory(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid category data",
			Error:   err.Error(),
		})
		return
	}

	category := &models.Category{
		RestaurantID: restaurantID,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}

	if err := ctrl.menuRepo.CreateCategory(c.Request.Context(), category); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to create category",
		})
		return
	}

	invalidateMenuCache(restaurantID)

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// @Summary Create product
// @Description Create a product with its option groups
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid product data",
			Error:   err.Error(),
		})
		return
	}

	product := &models.Product{
		RestaurantID:      restaurantID,
		CategoryID:        req.CategoryID,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		ImageURL:          req.ImageURL,
		AllowsHalfAndHalf: req.AllowsHalfAndHalf,
		IsActive:          true,
	}

	groups := buildOptionGroups(req.OptionGroups)

	if err := ctrl.menuRepo.CreateProduct(c.Request.Context(), product, groups); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to create product",
		})
		return
	}

	invalidateMenuCache(restaurantID)

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

func buildOptionGroups(reqs []models.OptionGroupRequest) []models.OptionGroup {
	groups := make([]models.OptionGroup, 0, len(reqs))
	for _, gr := range reqs {
		rule := gr.PriceRule
		if rule == "" {
			rule = models.PriceRuleSum
		}

		group := models.OptionGroup{
			Name:          gr.Name,
			SelectionType: gr.SelectionType,
			MinSelection:  gr.MinSelection,
			MaxSelection:  gr.MaxSelection,
			PriceRule:     rule,
			DisplayOrder:  gr.DisplayOrder,
		}
		for _, or := range gr.Options {
			group.Options = append(group.Options, models.Option{
				Name:         or.Name,
				Price:        or.Price,
				IsAvailable:  or.IsAvailable,
				DisplayOrder: or.DisplayOrder,
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// @Summary Update product
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body models.UpdateProductRequest true "Product"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")
	id, _ := strconv.Atoi(c.Param("id"))

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid product data",
			Error:   err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	product, err := ctrl.menuRepo.GetProductByID(ctx, restaurantID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Product not found",
		})
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.CategoryID > 0 {
		product.CategoryID = req.CategoryID
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.ImageURL != "" {
		product.ImageURL = req.ImageURL
	}
	product.AllowsHalfAndHalf = req.AllowsHalfAndHalf
	product.IsActive = req.IsActive

	if err := ctrl.menuRepo.UpdateProduct(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to update product",
		})
		return
	}

	invalidateMenuCache(restaurantID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// @Summary Replace option groups
// @Description Replace the full option-group set of a product
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param groups body []models.OptionGroupRequest true "Option groups"
// @Success 200 {object} models.Response
// @Router /admin/products/{id}/option-groups [put]
func (ctrl *ProductController) ReplaceOptionGroups(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")
	id, _ := strconv.Atoi(c.Param("id"))

	var reqs []models.OptionGroupRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid option group data",
			Error:   err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	if _, err := ctrl.menuRepo.GetProductByID(ctx, restaurantID, id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Product not found",
		})
		return
	}

	groups := buildOptionGroups(reqs)

	if err := ctrl.menuRepo.ReplaceOptionGroups(ctx, id, groups); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to update option groups",
		})
		return
	}

	invalidateMenuCache(restaurantID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Option groups updated successfully",
		Data:    groups,
	})
}

// @Summary Delete product
// @Description Soft-deactivate a product; historic orders keep their snapshots
// @Tags Admin - Menu
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	restaurantID := c.GetInt("restaurant_id")
	id, _ := strconv.Atoi(c.Param("id"))

	if err := ctrl.menuRepo.DeleteProduct(c.Request.Context(), restaurantID, id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to delete product",
		})
		return
	}

	invalidateMenuCache(restaurantID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product deactivated successfully",
	})
}

// @Summary Upload product image
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Product image"
// @Success 200 {object} models.Response
// @Router /admin/products/image [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Image file is required",
		})
		return
	}

	localPath, err := utils.SaveTempImage(c, fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	imageURL, err := libs.UploadImage(localPath, "products")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to upload image",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Image uploaded successfully",
		Data:    gin.H{"image_url": imageURL},
	})
}
