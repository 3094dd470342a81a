package responder

import (
	"fmt"
	"strings"

	"github.com/cobranzia/debt-negotiation-be/internal/core/kb"
	"github.com/cobranzia/debt-negotiation-be/internal/core/nlp"
)

// intentResponseType maps an analyzed intent to the response type that
// answers it. human_request never reaches the generator; the escalation
// chain intercepts it first.
func intentResponseType(intent string) string {
	switch intent {
	case nlp.IntentDiscountRequest:
		return TypeDiscountOffer
	case nlp.IntentInstallmentRequest:
		return TypeInstallmentOptions
	case nlp.IntentTimeRequest:
		return TypeTimeExtension
	case nlp.IntentAgreement:
		return TypeAgreementConfirmation
	default:
		return TypeGeneralInquiry
	}
}

// genericContent renders the fallback templates, parameterized only by
// intent, proposal terms and policy limits.
func genericContent(responseType, debtorName string, proposal ProposalTerms, limits kb.NegotiationLimits) string {
	greeting := "Hola"
	if debtorName != "" {
		greeting = "Hola " + firstName(debtorName)
	}

	switch responseType {
	case TypeDiscountOffer:
		discounted := proposal.TotalAmount * (1 - float64(limits.MaxDiscountPercent)/100)
		return fmt.Sprintf(
			"%s, entendemos tu solicitud. Podemos ofrecerte hasta un %d%% de descuento sobre el total, "+
				"quedando en %s si liquidas en un solo pago. ¿Te interesa esta opción?",
			greeting, limits.MaxDiscountPercent, formatAmount(discounted))

	case TypeInstallmentOptions:
		months := limits.MaxTermMonths
		if months < 1 {
			months = 1
		}
		monthly := proposal.TotalAmount / float64(months)
		return fmt.Sprintf(
			"%s, claro que podemos dividir el pago. Tenemos planes de hasta %d mensualidades; "+
				"por ejemplo, %d pagos de %s. ¿Cuántas cuotas te acomodan?",
			greeting, months, months, formatAmount(monthly))

	case TypeTimeExtension:
		return fmt.Sprintf(
			"%s, entendemos que necesitas tiempo. Podemos extender el plazo hasta %d meses "+
				"manteniendo las condiciones actuales. ¿Te funciona esa extensión?",
			greeting, limits.MaxTermMonths)

	case TypeAgreementConfirmation:
		return fmt.Sprintf(
			"%s, ¡excelente decisión! Confirmamos el acuerdo por %s en %d pago(s). "+
				"Recibirás los detalles y el enlace de pago en breve. Gracias por resolver esto con nosotros.",
			greeting, formatAmount(proposal.TotalAmount), max(proposal.Installments, 1))

	default: // TypeGeneralInquiry
		return fmt.Sprintf(
			"%s, gracias por tu mensaje. Estoy aquí para ayudarte a encontrar una forma cómoda de "+
				"resolver tu adeudo de %s. Puedo ofrecerte descuentos por liquidación, planes de pago "+
				"o una extensión de plazo. ¿Qué opción te interesa?",
			greeting, formatAmount(proposal.TotalAmount))
	}
}

// personalizedContent renders the intent template adjusted by the debtor's
// communication style and risk level.
func personalizedContent(responseType string, req *Request) string {
	debtor := req.Debtor
	corporate := req.Corporate

	name := firstName(debtor.Personal.Name)
	greeting := styleGreeting(debtor.Personalization.CommunicationStyle, name)

	var body string
	switch responseType {
	case TypeDiscountOffer:
		discounted := req.Proposal.TotalAmount * (1 - float64(req.Limits.MaxDiscountPercent)/100)
		body = fmt.Sprintf(
			"en nombre de %s puedo ofrecerte hasta un %d%% de descuento, quedando tu adeudo en %s "+
				"con pago único.",
			corporate.Profile.Name, req.Limits.MaxDiscountPercent, formatAmount(discounted))

	case TypeInstallmentOptions:
		months := req.Limits.MaxTermMonths
		if months < 1 {
			months = 1
		}
		monthly := req.Proposal.TotalAmount / float64(months)
		body = fmt.Sprintf(
			"%s puede dividir tu saldo en hasta %d mensualidades de aproximadamente %s cada una.",
			corporate.Profile.Name, months, formatAmount(monthly))

	case TypeTimeExtension:
		body = fmt.Sprintf(
			"podemos extender tu plazo hasta %d meses sin modificar las condiciones acordadas con %s.",
			req.Limits.MaxTermMonths, corporate.Profile.Name)

	case TypeAgreementConfirmation:
		body = fmt.Sprintf(
			"queda confirmado tu acuerdo con %s por %s. Te haremos llegar los detalles de pago enseguida.",
			corporate.Profile.Name, formatAmount(req.Proposal.TotalAmount))

	default:
		body = fmt.Sprintf(
			"represento a %s y mi objetivo es ayudarte a resolver tu adeudo de %s de la forma más "+
				"cómoda posible: descuento por liquidación, mensualidades o más plazo.",
			corporate.Profile.Name, formatAmount(req.Proposal.TotalAmount))
	}

	closing := riskClosing(debtor.Personalization.RiskLevel)
	return greeting + ", " + body + closing
}

func styleGreeting(style, name string) string {
	switch style {
	case kb.StyleFormal:
		if name != "" {
			return "Estimado/a " + name
		}
		return "Estimado cliente"
	case kb.StyleInformal:
		if name != "" {
			return "¡Hola " + name + "!"
		}
		return "¡Hola!"
	default:
		if name != "" {
			return "Hola " + name
		}
		return "Hola"
	}
}

func riskClosing(riskLevel string) string {
	switch riskLevel {
	case kb.RiskHigh:
		return " Resolver esto pronto evitará gestiones adicionales sobre tu cuenta; estoy para ayudarte hoy mismo."
	case kb.RiskMedium:
		return " Mientras antes lo resolvamos, mejores condiciones podremos sostener."
	default:
		return " Quedo atento a lo que mejor te acomode."
	}
}

// OpeningMessage is the AI-authored first message of a negotiation,
// summarizing the proposal and inviting discussion.
func OpeningMessage(debtorName, corporateName string, proposal ProposalTerms) string {
	greeting := "Hola"
	if debtorName != "" {
		greeting = "Hola " + firstName(debtorName)
	}
	from := ""
	if corporateName != "" {
		from = " en nombre de " + corporateName
	}
	return fmt.Sprintf(
		"%s, soy tu asistente de negociación%s. Tienes una propuesta activa por %s en %d pago(s) de %s. "+
			"Podemos conversar sobre descuentos, mensualidades o plazos hasta encontrar una opción que te funcione. "+
			"¿Cómo te gustaría resolverlo?",
		greeting, from, formatAmount(proposal.TotalAmount), max(proposal.Installments, 1),
		formatAmount(proposal.InstallmentAmount))
}

// HandoffMessage is the reason-specific message persisted when a
// conversation escalates to a human representative.
func HandoffMessage(reason, debtorName, corporateName string) string {
	name := firstName(debtorName)
	if name == "" {
		name = "Hola"
	} else {
		name = "Hola " + name
	}
	company := corporateName
	if company == "" {
		company = "nuestro equipo"
	}

	switch reason {
	case "user_requested_human":
		return fmt.Sprintf("%s, por supuesto. Un representante de %s tomará esta conversación y te atenderá personalmente en breve.", name, company)
	case "message_limit_exceeded":
		return fmt.Sprintf("%s, para darte una mejor atención, un asesor de %s continuará esta negociación contigo directamente.", name, company)
	case "negative_sentiment":
		return fmt.Sprintf("%s, lamentamos la situación que describes. Un representante de %s revisará tu caso con la sensibilidad que merece y te contactará pronto.", name, company)
	case "high_discount_request":
		return fmt.Sprintf("%s, el descuento que solicitas requiere autorización especial. Un representante de %s evaluará tu propuesta y te responderá a la brevedad.", name, company)
	case "extended_time_request":
		return fmt.Sprintf("%s, el plazo que necesitas requiere aprobación adicional. Un asesor de %s revisará las opciones disponibles y te contactará.", name, company)
	default: // technical_error and anything unforeseen
		return fmt.Sprintf("%s, un representante de %s dará seguimiento a tu caso personalmente en breve.", name, company)
	}
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
