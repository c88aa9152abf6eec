package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sufra/handlers"
	"sufra/middleware"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// --- Bootstrap ---
	api.Post("/init", handlers.HandleInitializeAdmin)

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", handlers.HandleRegister)
	auth.Post("/login", handlers.HandleLogin)
	auth.Get("/profile", middleware.JWTMiddleware, handlers.HandleGetProfile)

	// --- Public Storefront Routes ---
	api.Get("/meals", handlers.HandleListMeals)
	api.Get("/meals/:mealId", handlers.HandleGetMeal)
	api.Get("/tags", handlers.HandleListTags)
	api.Get("/branches", handlers.HandleListBranches)
	api.Get("/schedule/status", handlers.HandleGetScheduleStatus)

	// Reservation gate: guests get a login redirect, so auth is optional here.
	api.Post("/reservations/initiate", middleware.OptionalJWT, handlers.HandleInitiateReservation)

	// --- Customer Routes ---
	cart := api.Group("/cart", middleware.JWTMiddleware, middleware.CustomerRequired)
	cart.Get("/", handlers.HandleGetCart)
	cart.Delete("/", handlers.HandleClearCart)
	cart.Post("/items", handlers.HandleAddCartItem)
	cart.Put("/items/:itemId", handlers.HandleUpdateCartItem)
	cart.Delete("/items/:itemId", handlers.HandleRemoveCartItem)

	api.Post("/checkout", middleware.JWTMiddleware, middleware.CustomerRequired, handlers.HandleCreateCheckoutSession)
	api.Post("/checkout/complete", middleware.JWTMiddleware, middleware.CustomerRequired, handlers.HandleCompleteCheckout)
	api.Get("/orders", middleware.JWTMiddleware, middleware.CustomerRequired, handlers.HandleListMyOrders)

	api.Post("/reservations", middleware.JWTMiddleware, middleware.CustomerRequired, handlers.HandleCreateReservation)
	api.Get("/reservations", middleware.JWTMiddleware, middleware.CustomerRequired, handlers.HandleListMyReservations)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.JWTMiddleware, middleware.AdminRequired)

	admin.Get("/dashboard/summary", handlers.HandleGetAdminDashboardSummary)

	admin.Get("/working-days", handlers.HandleListWorkingDays)
	admin.Post("/working-days", handlers.HandleCreateWorkingDay)
	admin.Put("/working-days/:dayId", handlers.HandleUpdateWorkingDay)
	admin.Delete("/working-days/:dayId", handlers.HandleDeleteWorkingDay)

	admin.Post("/meals", handlers.HandleCreateMeal)
	admin.Post("/meals/suggest-description", handlers.HandleSuggestMealDescription)
	admin.Put("/meals/:mealId", handlers.HandleUpdateMeal)
	admin.Delete("/meals/:mealId", handlers.HandleDeleteMeal)

	admin.Post("/tags", handlers.HandleCreateTag)
	admin.Put("/tags/:tagId", handlers.HandleUpdateTag)
	admin.Delete("/tags/:tagId", handlers.HandleDeleteTag)

	admin.Post("/branches", handlers.HandleCreateBranch)
	admin.Put("/branches/:branchId", handlers.HandleUpdateBranch)
	admin.Put("/branches/:branchId/status", handlers.HandleSetBranchActiveStatus)
	admin.Delete("/branches/:branchId", handlers.HandleDeleteBranch)

	admin.Put("/users/:userId/role", handlers.HandleUpdateUserRole)

	admin.Post("/employees", handlers.HandleCreateEmployee)
	admin.Get("/employees", handlers.HandleListEmployees)
	admin.Put("/employees/:employeeId", handlers.HandleUpdateEmployee)
	admin.Put("/employees/:employeeId/status", handlers.HandleSetEmployeeStatus)
	admin.Delete("/employees/:employeeId", handlers.HandleDeleteEmployee)

	admin.Get("/reports/profit-loss", handlers.HandleGetProfitLossReport)
	admin.Get("/reports/profit-loss/export", handlers.HandleExportProfitLossReport)

	// --- Staff Routes (admin or employee) ---
	staff := api.Group("/staff", middleware.JWTMiddleware, middleware.StaffRequired)
	staff.Get("/reservations", handlers.HandleListAllReservations)
	staff.Put("/reservations/:reservationId/status", handlers.HandleUpdateReservationStatus)
}
