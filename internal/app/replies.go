package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkeye/Rooms/internal/domain"
	"github.com/samber/lo"
)

// Reply is the private answer sent back to the invoking actor.
// Err is the underlying outcome, nil on success.
type Reply struct {
	Content string
	Err     error
}

func createdReply(room domain.Room, owner domain.User, ttl time.Duration, err error) Reply {
	if err != nil {
		return errorReply(err)
	}
	return Reply{Content: fmt.Sprintf(
		"✅ **Sala creada exitosamente!**\n🏷️ Nombre: %s\n👑 Dueño: %s\n👥 Miembros permitidos: %d\n📅 Expira en %d días\n\n<#%s>",
		room.Name, owner.Tag, room.Capacity, int(ttl/(24*time.Hour)), room.ChannelID,
	)}
}

func invitedReply(room domain.Room, target domain.User, err error) Reply {
	switch {
	case errors.Is(err, ErrCapacityReached):
		return Reply{Content: fmt.Sprintf("⚠️ Se alcanzó el límite de %d miembros.", room.Capacity), Err: err}
	case errors.Is(err, ErrAlreadyMember):
		return Reply{Content: fmt.Sprintf("ℹ️ %s ya es miembro de tu sala.", target.Mention()), Err: err}
	case err != nil:
		return errorReply(err)
	}
	return Reply{Content: fmt.Sprintf("✅ %s ha sido invitado a tu sala.", target.Mention())}
}

func kickedReply(target domain.User, err error) Reply {
	if err != nil {
		return errorReply(err)
	}
	return Reply{Content: fmt.Sprintf("🚫 %s ha sido expulsado de tu sala.", target.Mention())}
}

func membersReply(members []domain.Member, err error) Reply {
	if err != nil {
		return errorReply(err)
	}
	if len(members) == 0 {
		return Reply{Content: "👥 La sala no tiene miembros."}
	}
	tags := lo.Map(members, func(m domain.Member, _ int) string { return m.User.Tag })
	return Reply{Content: "👥 Miembros actuales de la sala:\n- " + strings.Join(tags, "\n- ")}
}

func closedReply(err error) Reply {
	if err != nil {
		return errorReply(err)
	}
	return Reply{Content: "✅ Tu sala ha sido cerrada."}
}

func errorReply(err error) Reply {
	var msg string
	switch {
	case errors.Is(err, ErrRoomExists):
		msg = "⚠️ Ya tienes una sala activa. Usa `/cerrar` para cerrar tu sala actual antes de crear una nueva."
	case errors.Is(err, ErrNoRoom):
		msg = "⚠️ No tienes una sala activa."
	case errors.Is(err, ErrKickOwner):
		msg = "⚠️ No puedes expulsarte de tu propia sala. Usa `/cerrar` para cerrarla."
	case errors.Is(err, ErrInvalidCapacity):
		msg = "⚠️ La cantidad máxima de miembros debe ser al menos 1."
	case errors.Is(err, ErrMissingTarget):
		msg = "⚠️ Debes indicar un usuario."
	case errors.Is(err, ErrUnknownCommand):
		msg = "⚠️ Comando desconocido."
	case errors.Is(err, ErrRoomCreation):
		msg = "❌ No se pudo crear la sala. Inténtalo de nuevo más tarde."
	default:
		msg = "❌ Ocurrió un error al procesar el comando."
	}
	return Reply{Content: msg, Err: err}
}
