package routes

import (
	"go-postgres-stockledger/controllers"
	"go-postgres-stockledger/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	// Posting endpoints live at the root, matching the documented contract.
	posting := r.Group("/", middlewares.Auth())
	{
		posting.POST("/grn", controllers.PostGRN)
		posting.POST("/issue", controllers.PostIssue)
	}

	api := r.Group("/api")
	{
		api.POST("/auth/login", controllers.Login)

		auth := api.Group("/", middlewares.Auth())
		{
			auth.GET("/auth/profile", controllers.Profile)
			auth.PUT("/auth/password", controllers.ChangePassword)

			// Posting aliases under /api for consistency with the rest.
			auth.POST("/grn", controllers.PostGRN)
			auth.POST("/issue", controllers.PostIssue)

			items := auth.Group("/items")
			{
				items.GET("/", controllers.ListItems)
				items.GET("/:id", controllers.GetItemByID)
				items.POST("/", controllers.CreateItem)
				items.PUT("/:id", controllers.UpdateItem)
				items.DELETE("/:id", controllers.DeleteItem)
			}

			categories := auth.Group("/categories")
			{
				categories.GET("/", controllers.ListCategories)
				categories.POST("/", controllers.CreateCategory)
				categories.PUT("/:id", controllers.UpdateCategory)
				categories.DELETE("/:id", controllers.DeleteCategory)
			}

			brands := auth.Group("/brands")
			{
				brands.GET("/", controllers.ListBrands)
				brands.POST("/", controllers.CreateBrand)
				brands.PUT("/:id", controllers.UpdateBrand)
				brands.DELETE("/:id", controllers.DeleteBrand)
			}

			uoms := auth.Group("/uoms")
			{
				uoms.GET("/", controllers.ListUOMs)
				uoms.POST("/", controllers.CreateUOM)
				uoms.PUT("/:id", controllers.UpdateUOM)
				uoms.DELETE("/:id", controllers.DeleteUOM)
			}

			companies := auth.Group("/companies")
			{
				companies.GET("/", controllers.ListCompanies)
				companies.GET("/:id", controllers.GetCompanyByID)
				companies.POST("/", controllers.CreateCompany)
				companies.PUT("/:id", controllers.UpdateCompany)
				companies.DELETE("/:id", controllers.DeleteCompany)
			}

			warehouses := auth.Group("/warehouses")
			{
				warehouses.GET("/", controllers.ListWarehouses)
				warehouses.GET("/:id", controllers.GetWarehouseByID)
				warehouses.POST("/", controllers.CreateWarehouse)
				warehouses.POST("/:id/locations", controllers.CreateLocation)
			}
			auth.PUT("/locations/:id", controllers.UpdateLocation)

			auth.GET("/stock", controllers.StockList)
			auth.GET("/stock/movements", controllers.MovementList)

			auth.GET("/transactions", controllers.TransactionList)
			auth.GET("/transactions/:id", controllers.TransactionDetail)

			reports := auth.Group("/reports")
			{
				reports.GET("/stock", controllers.ReportStock)
				reports.GET("/valuation", controllers.ReportValuation)
				reports.GET("/low-stock", controllers.ReportLowStock)
				reports.GET("/movements", controllers.ReportMovements)
			}

			admin := auth.Group("/admin", middlewares.AdminOnly())
			{
				admin.GET("/users", controllers.AdminListUsers)
				admin.POST("/users", controllers.AdminCreateUser)
				admin.PUT("/users/:id", controllers.AdminUpdateUser)
				admin.PUT("/users/:id/permissions", controllers.AdminSetUserPermissions)
				admin.GET("/permissions", controllers.AdminListPermissions)
				admin.GET("/audit", controllers.AuditList)
			}
		}
	}
}
