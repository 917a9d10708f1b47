package constant

const EmailOrderConfirmationTemplate = `
Dear %s,

Thank you for supporting Cudeca! Your order has been confirmed.

Order Details:
------------------------------------------
Order ID: %s
Event: %s
Date: %s
Location: %s
Tickets: %d
Total Amount: %s
------------------------------------------

Your access codes:
%s
Please show one code per attendee at the entrance.
%s
If you have any questions, please contact us at eventos@cudeca.org.

Best regards,
Fundación Cudeca

Note: This is an automated message, please do not reply to this email.
`

const EmailCertificateNotice = `
A donation certificate (%s) has been issued for this order in the name of %s.
`

const EmailOrderRefundTemplate = `
Dear %s,

Your order %s has been refunded and its tickets are no longer valid.

Refunded Amount: %s

If you have any questions, please contact us at eventos@cudeca.org.

Best regards,
Fundación Cudeca

Note: This is an automated message, please do not reply to this email.
`
