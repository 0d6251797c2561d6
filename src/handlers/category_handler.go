package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "fintrack-server/src/db"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
)

func categoriesCacheKey(userID int64) string {
	return fmt.Sprintf("categories:%d", userID)
}

// loadCategories returns the user's categories, served from the ristretto
// cache when present.
func loadCategories(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Category, error) {
	key := categoriesCacheKey(userID)
	if cached, ok := cache.GetCategoryCache(key); ok {
		return cached, nil
	}
	categories, err := db.GetAllCategories(ctx, pool, userID)
	if err != nil {
		return nil, err
	}
	cache.SetCategoryCache(key, categories)
	return categories, nil
}

func GetAllCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categories, err := loadCategories(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
			http.Error(w, "failed to get categories", http.StatusInternalServerError)
			return
		}
		if categories == nil {
			categories = []models.Category{}
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req struct {
			Name string                 `json:"name"`
			Type models.TransactionType `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || !models.ValidCategoryType(req.Type) {
			http.Error(w, "name and a type of expense, income or investment are required", http.StatusBadRequest)
			return
		}
		created, err := db.CreateCategory(r.Context(), pool, &models.Category{
			UserID: userID,
			Name:   req.Name,
			Type:   req.Type,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create category for user %d: %v", userID, err)
			http.Error(w, "failed to create category", http.StatusInternalServerError)
			return
		}
		cache.ClearAllCategoryCaches()
		log.Printf("INFO: Created category id %d for user %d, type %s", created.ID, userID, created.Type)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, err := strconv.ParseInt(chi.URLParam(r, "category_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		var req struct {
			Name string                 `json:"name"`
			Type models.TransactionType `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update category request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || !models.ValidCategoryType(req.Type) {
			http.Error(w, "name and a type of expense, income or investment are required", http.StatusBadRequest)
			return
		}
		updated, err := db.UpdateCategory(r.Context(), pool, &models.Category{
			ID:     categoryID,
			UserID: userID,
			Name:   req.Name,
			Type:   req.Type,
		})
		if err != nil {
			log.Printf("ERROR: Failed to update category id %d for user %d: %v", categoryID, userID, err)
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		cache.ClearAllCategoryCaches()
		log.Printf("INFO: Updated category id %d for user %d", updated.ID, userID)
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, err := strconv.ParseInt(chi.URLParam(r, "category_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteCategory(r.Context(), pool, userID, categoryID); err != nil {
			log.Printf("ERROR: Failed to delete category id %d for user %d: %v", categoryID, userID, err)
			http.Error(w, "failed to delete category", http.StatusConflict)
			return
		}
		cache.ClearAllCategoryCaches()
		log.Printf("INFO: Deleted category id %d for user %d", categoryID, userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
	}
}
