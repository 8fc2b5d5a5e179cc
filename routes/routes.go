package routes

import (
	"github.com/SidW111/Prescripto/authentication"
	"github.com/SidW111/Prescripto/controllers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes creates the Gin engine with every API group mounted.
func SetupRoutes() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// patient routes
	r.POST("/api/user/register", controllers.RegisterUser)
	r.POST("/api/user/login", controllers.LoginUser)

	user := r.Group("/api/user")
	user.Use(authentication.PatientAuthMiddleware())
	{
		user.GET("/get-profile", controllers.GetProfile)
		user.POST("/update-profile", controllers.UpdateProfile)
		user.POST("/book-appointment", controllers.BookAppointment)
		user.GET("/appointments", controllers.ListUserAppointments)
		user.POST("/cancel-appointment", controllers.CancelUserAppointment)
		user.POST("/payment-razorpay", controllers.PayAppointment)
		user.POST("/verify-razorpay", controllers.VerifyPayment)
	}

	// doctor routes
	r.GET("/api/doctor/list", controllers.DoctorList)
	r.POST("/api/doctor/login", controllers.DoctorLogin)

	doctor := r.Group("/api/doctor")
	doctor.Use(authentication.DoctorAuthMiddleware())
	{
		doctor.GET("/appointments", controllers.DoctorAppointments)
		doctor.POST("/complete-appointment", controllers.CompleteAppointment)
		doctor.POST("/cancel-appointment", controllers.DoctorCancelAppointment)
		doctor.GET("/dashboard", controllers.DoctorDashboard)
		doctor.GET("/profile", controllers.DoctorProfile)
		doctor.POST("/update-profile", controllers.UpdateDoctorProfile)
		doctor.POST("/change-availability", controllers.DoctorChangeAvailability)
	}

	// admin routes
	r.POST("/api/admin/login", controllers.AdminLogin)

	admin := r.Group("/api/admin")
	admin.Use(authentication.AdminAuthMiddleware())
	{
		admin.POST("/add-doctor", controllers.AddDoctor)
		admin.GET("/all-doctors", controllers.AllDoctors)
		admin.POST("/change-availability", controllers.AdminChangeAvailability)
		admin.GET("/appointments", controllers.AllAppointments)
		admin.POST("/cancel-appointment", controllers.AdminCancelAppointment)
		admin.GET("/dashboard", controllers.AdminDashboard)
	}

	return r
}
