package controllers_test

import (
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/SidW111/Prescripto/configuration"
	"github.com/SidW111/Prescripto/controllers"
	"github.com/SidW111/Prescripto/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway stands in for razorpay in tests.
type stubGateway struct {
	createdOrder map[string]interface{}
	orders       map[string]map[string]interface{}
	createErr    error
}

func (s *stubGateway) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.createdOrder = data
	return map[string]interface{}{"id": "order_test_1", "status": "created"}, nil
}

func (s *stubGateway) FetchOrder(orderID string) (map[string]interface{}, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, errors.New("order not found")
	}
	return order, nil
}

func useStubGateway(t *testing.T) *stubGateway {
	t.Helper()
	stub := &stubGateway{orders: map[string]map[string]interface{}{}}
	prev := controllers.Gateway
	controllers.Gateway = stub
	t.Cleanup(func() { controllers.Gateway = prev })
	return stub
}

func TestPayAppointment(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	stub := useStubGateway(t)

	_, token := createUser(t, "patient@example.com")
	doctor, _ := createDoctor(t, "doctor@example.com", 60, true)

	w, _ := doJSON(t, router, "POST", "/api/user/book-appointment",
		bookingPayload(doctor.DoctorID), map[string]string{"token": token})
	require.Equal(t, http.StatusOK, w.Code)

	var appointment models.Appointment
	require.NoError(t, configuration.DB.First(&appointment).Error)

	w, envelope := doJSON(t, router, "POST", "/api/user/payment-razorpay",
		map[string]interface{}{"appointmentId": appointment.AppointmentID},
		map[string]string{"token": token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, envelope["success"])
	assert.NotNil(t, envelope["order"])

	// the gateway order is for the fee in minor units with the appointment as receipt
	assert.EqualValues(t, 6000, stub.createdOrder["amount"])
	assert.Equal(t, strconv.FormatUint(uint64(appointment.AppointmentID), 10), stub.createdOrder["receipt"])
}

func TestPayAppointmentNotFound(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	useStubGateway(t)

	_, token := createUser(t, "patient@example.com")

	w, envelope := doJSON(t, router, "POST", "/api/user/payment-razorpay",
		map[string]interface{}{"appointmentId": 42}, map[string]string{"token": token})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Appointment not found", envelope["message"])
}

func TestPayAppointmentCancelled(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	useStubGateway(t)

	_, token := createUser(t, "patient@example.com")
	doctor, _ := createDoctor(t, "doctor@example.com", 60, true)

	w, _ := doJSON(t, router, "POST", "/api/user/book-appointment",
		bookingPayload(doctor.DoctorID), map[string]string{"token": token})
	require.Equal(t, http.StatusOK, w.Code)

	var appointment models.Appointment
	require.NoError(t, configuration.DB.First(&appointment).Error)

	w, _ = doJSON(t, router, "POST", "/api/user/cancel-appointment",
		map[string]interface{}{"appointmentId": appointment.AppointmentID},
		map[string]string{"token": token})
	require.Equal(t, http.StatusOK, w.Code)

	w, envelope := doJSON(t, router, "POST", "/api/user/payment-razorpay",
		map[string]interface{}{"appointmentId": appointment.AppointmentID},
		map[string]string{"token": token})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Appointment is cancelled", envelope["message"])
}

func TestVerifyPayment(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	stub := useStubGateway(t)

	_, token := createUser(t, "patient@example.com")
	doctor, _ := createDoctor(t, "doctor@example.com", 60, true)

	w, _ := doJSON(t, router, "POST", "/api/user/book-appointment",
		bookingPayload(doctor.DoctorID), map[string]string{"token": token})
	require.Equal(t, http.StatusOK, w.Code)

	var appointment models.Appointment
	require.NoError(t, configuration.DB.First(&appointment).Error)
	receipt := strconv.FormatUint(uint64(appointment.AppointmentID), 10)

	// gateway still reports the order unpaid: flag must stay untouched
	stub.orders["order_test_1"] = map[string]interface{}{"status": "created", "receipt": receipt}
	w, envelope := doJSON(t, router, "POST", "/api/user/verify-razorpay",
		map[string]interface{}{"razorpay_order_id": "order_test_1"},
		map[string]string{"token": token})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Payment failed", envelope["message"])

	require.NoError(t, configuration.DB.First(&appointment, appointment.AppointmentID).Error)
	assert.Equal(t, models.PaymentPending, appointment.PaymentStatus)

	// gateway reports paid: flag flips
	stub.orders["order_test_1"]["status"] = "paid"
	w, envelope = doJSON(t, router, "POST", "/api/user/verify-razorpay",
		map[string]interface{}{"razorpay_order_id": "order_test_1"},
		map[string]string{"token": token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Payment successful", envelope["message"])

	require.NoError(t, configuration.DB.First(&appointment, appointment.AppointmentID).Error)
	assert.Equal(t, models.PaymentPaid, appointment.PaymentStatus)
}

func TestVerifyPaymentCancelledAppointment(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	stub := useStubGateway(t)

	_, token := createUser(t, "patient@example.com")
	doctor, _ := createDoctor(t, "doctor@example.com", 60, true)

	w, _ := doJSON(t, router, "POST", "/api/user/book-appointment",
		bookingPayload(doctor.DoctorID), map[string]string{"token": token})
	require.Equal(t, http.StatusOK, w.Code)

	var appointment models.Appointment
	require.NoError(t, configuration.DB.First(&appointment).Error)

	w, _ = doJSON(t, router, "POST", "/api/user/cancel-appointment",
		map[string]interface{}{"appointmentId": appointment.AppointmentID},
		map[string]string{"token": token})
	require.Equal(t, http.StatusOK, w.Code)

	receipt := strconv.FormatUint(uint64(appointment.AppointmentID), 10)
	stub.orders["order_test_1"] = map[string]interface{}{"status": "paid", "receipt": receipt}

	// a cancelled appointment cannot become paid
	w, envelope := doJSON(t, router, "POST", "/api/user/verify-razorpay",
		map[string]interface{}{"razorpay_order_id": "order_test_1"},
		map[string]string{"token": token})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, envelope["success"])

	require.NoError(t, configuration.DB.First(&appointment, appointment.AppointmentID).Error)
	assert.Equal(t, models.PaymentPending, appointment.PaymentStatus)
}
