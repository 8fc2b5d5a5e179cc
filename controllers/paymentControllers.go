package controllers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/SidW111/Prescripto/configuration"
	"github.com/SidW111/Prescripto/models"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/razorpay/razorpay-go"
)

// PaymentGateway is the slice of the razorpay API the handlers use. Tests
// swap in a stub.
type PaymentGateway interface {
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)
	FetchOrder(orderID string) (map[string]interface{}, error)
}

// Gateway is nil until InitRazorpay runs with credentials present.
var Gateway PaymentGateway

type razorpayGateway struct {
	client *razorpay.Client
}

// InitRazorpay wires the live gateway from environment credentials.
func InitRazorpay() {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		log.Println("Razorpay credentials missing, payments disabled")
		return
	}
	Gateway = &razorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *razorpayGateway) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return g.client.Order.Create(data, nil)
}

func (g *razorpayGateway) FetchOrder(orderID string) (map[string]interface{}, error) {
	return g.client.Order.Fetch(orderID, nil, nil)
}

// PayAppointment creates a gateway order for an appointment's fee in minor
// units. No local state changes until the payment is verified.
func PayAppointment(c *gin.Context) {
	var req struct {
		AppointmentID uint `json:"appointmentId" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "appointmentId is required"})
		return
	}

	if Gateway == nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment gateway not configured"})
		return
	}

	var appointment models.Appointment
	if err := configuration.DB.First(&appointment, req.AppointmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Appointment not found"})
		return
	}

	if appointment.BookingStatus == models.BookingCancelled {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Appointment is cancelled"})
		return
	}

	currency := os.Getenv("CURRENCY")
	if currency == "" {
		currency = "INR"
	}

	order, err := Gateway.CreateOrder(map[string]interface{}{
		"amount":   int64(appointment.Amount * 100),
		"currency": currency,
		"receipt":  strconv.FormatUint(uint64(appointment.AppointmentID), 10),
	})
	if err != nil {
		log.Println("Error creating payment order:", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Failed to create payment order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// VerifyPayment fetches the order from the gateway and marks the appointment
// paid only when the gateway reports the status "paid". Any other status
// leaves the appointment untouched.
func VerifyPayment(c *gin.Context) {
	var req struct {
		OrderID string `json:"razorpay_order_id" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "razorpay_order_id is required"})
		return
	}

	if Gateway == nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment gateway not configured"})
		return
	}

	order, err := Gateway.FetchOrder(req.OrderID)
	if err != nil {
		log.Println("Error fetching payment order:", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Failed to fetch payment order"})
		return
	}

	status, _ := order["status"].(string)
	if status != "paid" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment failed"})
		return
	}

	receipt, _ := order["receipt"].(string)
	appointmentID, err := strconv.ParseUint(receipt, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Invalid order receipt"})
		return
	}

	var appointment models.Appointment
	if err := configuration.DB.First(&appointment, uint(appointmentID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Appointment not found"})
		return
	}

	if err := appointment.MarkPaid(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := configuration.DB.Model(&appointment).Update("payment_status", appointment.PaymentStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update payment status"})
		return
	}

	// Receipt mail is best effort.
	if pdf, err := generateReceiptPDF(appointment); err == nil {
		if err := SendReceiptEmail(appointment, pdf); err != nil {
			log.Println("Error sending receipt email:", err)
		}
	} else {
		log.Println("Error generating receipt PDF:", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment successful"})
}

// generateReceiptPDF renders the paid-appointment receipt attached to the
// confirmation mail.
func generateReceiptPDF(appointment models.Appointment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Prescripto - Appointment Receipt", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Payment Receipt", "1", 1, "C", false, 0, "")
	addReceiptDetail(pdf, "Appointment ID", fmt.Sprintf("%d", appointment.AppointmentID))
	addReceiptDetail(pdf, "Doctor Name", appointment.DocData.Name)
	addReceiptDetail(pdf, "Speciality", appointment.DocData.Speciality)
	addReceiptDetail(pdf, "Patient Name", appointment.UserData.Name)
	addReceiptDetail(pdf, "Date", appointment.SlotDate)
	addReceiptDetail(pdf, "Time Slot", appointment.SlotTime)

	pdf.SetFont("Arial", "B", 13)
	addReceiptDetail(pdf, "Amount Paid", fmt.Sprintf("%.2f", appointment.Amount))

	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, "Thank you for using our service.", "", "L", false)
	pdf.SetY(pdf.GetY() + 12)
	pdf.CellFormat(0, 10, "This is a computer generated receipt", "", 1, "R", false, 0, "")

	var pdfBuffer bytes.Buffer
	if err := pdf.Output(&pdfBuffer); err != nil {
		return nil, err
	}
	return pdfBuffer.Bytes(), nil
}

func addReceiptDetail(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
