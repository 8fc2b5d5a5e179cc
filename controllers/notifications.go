package controllers

import (
	"fmt"
	"io"
	"os"

	"github.com/SidW111/Prescripto/models"
	"github.com/go-gomail/gomail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// sendMail delivers one message with an optional attachment. When SMTP
// credentials are absent the mail is silently skipped, notifications are
// never a hard dependency.
func sendMail(subject, body, to, attachmentName string, attachmentData []byte) error {
	senderEmail := os.Getenv("SMTP_EMAIL")
	senderPassword := os.Getenv("SMTP_PASSWORD")
	if senderEmail == "" || to == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if attachmentData != nil {
		m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachmentData)
			return err
		}))
	}

	d := gomail.NewDialer("smtp.gmail.com", 587, senderEmail, senderPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

// SendBookingEmail confirms a fresh booking to the patient.
func SendBookingEmail(appointment models.Appointment) error {
	body := fmt.Sprintf(
		"Hey %s,\n\nYour appointment with %s (%s) is booked for %s at %s.\nConsultation fee: %.2f\n\nSee you then!",
		appointment.UserData.Name, appointment.DocData.Name, appointment.DocData.Speciality,
		appointment.SlotDate, appointment.SlotTime, appointment.Amount)
	return sendMail("Appointment Confirmation", body, appointment.UserData.Email, "", nil)
}

// SendReceiptEmail mails the paid receipt PDF after a verified payment.
func SendReceiptEmail(appointment models.Appointment, pdf []byte) error {
	body := fmt.Sprintf(
		"Hey %s,\n\nWe received your payment of %.2f for the appointment on %s at %s. The receipt is attached.",
		appointment.UserData.Name, appointment.Amount, appointment.SlotDate, appointment.SlotTime)
	return sendMail("Payment Confirmation", body, appointment.UserData.Email, "receipt.pdf", pdf)
}

// SendBookingSMS texts the booking confirmation when Twilio is configured.
func SendBookingSMS(appointment models.Appointment) error {
	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTHTOKEN")
	from := os.Getenv("TWILIO_PHONENUMBER")
	if accountSID == "" || from == "" || appointment.UserData.Phone == "" {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(appointment.UserData.Phone)
	params.SetFrom(from)
	params.SetBody(fmt.Sprintf("Your appointment with %s is booked for %s at %s.",
		appointment.DocData.Name, appointment.SlotDate, appointment.SlotTime))

	_, err := client.Api.CreateMessage(params)
	return err
}
