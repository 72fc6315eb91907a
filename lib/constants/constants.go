package constants

const (
	ALLOWED_ORIGINS       = "/skgroup/ALLOWED_ORIGINS"
	DATABASE_RDS_ENDPOINT = "/skgroup/DATABASE_RDS_ENDPOINT"
	DATABASE_PORT         = "/skgroup/DATABASE_PORT"
	DATABASE_NAME         = "/skgroup/DATABASE_NAME"
	DATABASE_USERNAME     = "/skgroup/DATABASE_USERNAME"
	DATABASE_PASSWORD     = "/skgroup/DATABASE_PASSWORD"
	SSL_MODE              = "/skgroup/SSL_MODE"
	RAZORPAY_KEY_ID       = "/skgroup/RAZORPAY_KEY_ID"
	RAZORPAY_KEY_SECRET   = "/skgroup/RAZORPAY_KEY_SECRET"
	ENQUIRY_BUCKET        = "/skgroup/ENQUIRY_BUCKET"
	SMTP_HOST             = "/skgroup/SMTP_HOST"
	SMTP_PORT             = "/skgroup/SMTP_PORT"
	SMTP_USERNAME         = "/skgroup/SMTP_USERNAME"
	SMTP_PASSWORD         = "/skgroup/SMTP_PASSWORD"
	SMTP_FROM             = "/skgroup/SMTP_FROM"
	EMAIL_ENABLED         = "/skgroup/EMAIL_ENABLED"
	DRIVER_NAME           = "postgres"
)
