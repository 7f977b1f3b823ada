package constant

type NoticeCategory string

const (
	NoticeSuccess NoticeCategory = "success"
	NoticeDanger  NoticeCategory = "danger"
	NoticeInfo    NoticeCategory = "info"
	NoticeWarning NoticeCategory = "warning"
)
