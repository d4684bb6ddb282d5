package dto

// DataResponse успешный ответ. Клиент всегда получает {data} или {error}.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse ответ с ошибкой. Field и File заполняются для ошибок загрузки.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	File  string `json:"file,omitempty"`
}

// CountResponse счётчик, например непрочитанных уведомлений.
type CountResponse struct {
	Count int64 `json:"count"`
}

// URLsResponse ссылки на загруженные файлы.
type URLsResponse struct {
	URLs []string `json:"urls"`
}

// URLResponse ссылка на один загруженный файл.
type URLResponse struct {
	URL string `json:"url"`
}

// SlugResponse сохранённый slug.
type SlugResponse struct {
	Slug string `json:"slug"`
}
