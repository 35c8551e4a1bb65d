package models

import "fmt"

// Topic names for the realtime channel. A principal's private queue shares
// its name with the principal id ("user/5", "staff/2"); conversations get a
// broadcast topic plus separate typing/read sub-topics.

func UserTopic(userID uint) string { return fmt.Sprintf("user/%d", userID) }

func StaffTopic(staffID uint) string { return fmt.Sprintf("staff/%d", staffID) }

func ConversationTopic(conversationID uint) string {
	return fmt.Sprintf("conversation/%d", conversationID)
}

func ConversationTypingTopic(conversationID uint) string {
	return fmt.Sprintf("conversation/%d/typing", conversationID)
}

func ConversationReadTopic(conversationID uint) string {
	return fmt.Sprintf("conversation/%d/read", conversationID)
}

// PrincipalTopic returns the private queue for a sender type + id pair.
func PrincipalTopic(senderType string, id uint) string {
	if senderType == SenderTypeStaff {
		return StaffTopic(id)
	}
	return UserTopic(id)
}
