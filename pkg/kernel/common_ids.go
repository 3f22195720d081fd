package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type RoleID string

func NewRoleID(id string) RoleID { return RoleID(id) }
func (r RoleID) String() string  { return string(r) }
func (r RoleID) IsEmpty() bool   { return string(r) == "" }

type NotificationID string

func NewNotificationID(id string) NotificationID { return NotificationID(id) }
func (n NotificationID) String() string          { return string(n) }
func (n NotificationID) IsEmpty() bool           { return string(n) == "" }
