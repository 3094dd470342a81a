package responder

import (
	"fmt"
	"strings"
)

// BuildPersonalizedPrompt composes the system prompt for a model-backed
// provider. It embeds the corporate profile, the debtor's personal and
// debt info, the behavior profile, the last two negotiation summaries,
// the policy limits and every custom-response template.
func BuildPersonalizedPrompt(req *Request) string {
	var sb strings.Builder

	corporate := req.Corporate
	debtor := req.Debtor

	sb.WriteString(fmt.Sprintf("Eres el asistente de negociación de cobranza de %s (%s).\n",
		corporate.Profile.Name, corporate.Profile.Industry))
	if corporate.Profile.Description != "" {
		sb.WriteString(corporate.Profile.Description + "\n")
	}
	sb.WriteString(fmt.Sprintf("Tono de comunicación: %s.\n\n", corporate.Profile.Tone))

	sb.WriteString("=== DEUDOR ===\n")
	sb.WriteString(fmt.Sprintf("Nombre: %s\n", debtor.Personal.Name))
	sb.WriteString(fmt.Sprintf("Deuda: %s, %d días de atraso\n",
		formatAmount(debtor.Debt.Amount), debtor.Debt.DaysOverdue))
	if debtor.Behavior.NegotiationTendency != "" {
		sb.WriteString(fmt.Sprintf("Tendencia de negociación: %s\n", debtor.Behavior.NegotiationTendency))
	}
	sb.WriteString(fmt.Sprintf("Patrón de pago: %s\n", debtor.Behavior.PaymentPattern))
	sb.WriteString(fmt.Sprintf("Estilo de comunicación: %s, nivel de riesgo: %s\n\n",
		debtor.Personalization.CommunicationStyle, debtor.Personalization.RiskLevel))

	if len(debtor.NegotiationHistory) > 0 {
		sb.WriteString("=== NEGOCIACIONES PREVIAS ===\n")
		limit := len(debtor.NegotiationHistory)
		if limit > 2 {
			limit = 2
		}
		for _, n := range debtor.NegotiationHistory[:limit] {
			sb.WriteString(fmt.Sprintf("- %s: %s (%d mensajes)\n",
				n.StartedAt.Format("2006-01-02"), n.Status, n.MessageCount))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("=== LÍMITES DE POLÍTICA ===\n")
	sb.WriteString(fmt.Sprintf("Descuento máximo: %d%%\n", req.Limits.MaxDiscountPercent))
	sb.WriteString(fmt.Sprintf("Plazo máximo: %d meses\n\n", req.Limits.MaxTermMonths))

	if len(corporate.CustomResponses) > 0 {
		sb.WriteString("=== RESPUESTAS CORPORATIVAS ===\n")
		for _, t := range corporate.CustomResponses {
			sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", t.Trigger, t.Title, t.Body))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Instrucciones:\n")
	sb.WriteString("- Nunca ofrezcas condiciones fuera de los límites de política\n")
	sb.WriteString("- Responde en español, breve y claro\n")
	sb.WriteString("- No inventes información que no esté arriba\n")

	return sb.String()
}
