package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteRegister is the combined login/registration route.
	RouteRegister = "/register"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteAboutProduct is the product description page.
	RouteAboutProduct = "/about_product"
	// RouteDrafts is the work-in-progress page.
	RouteDrafts = "/drafts"
	// RoutePlans is the roadmap page.
	RoutePlans = "/plans"
	// RouteContact is the public contact form.
	RouteContact = "/contact"

	// RouteAdmin is the admin dashboard.
	RouteAdmin = "/admin"
	// RouteAdminMarkRead marks a contact message as read.
	RouteAdminMarkRead = "/admin/mark_read/{id}"
	// RouteAdminDelete deletes a contact message.
	RouteAdminDelete = "/admin/delete/{id}"
	// RouteEditText is the text block editor.
	RouteEditText = "/edit_text/edit/{id}"
	// RouteEditPage is the named page editor.
	RouteEditPage = "/admin/edit_page/{name}"
)

// Form action values for the combined /register form.
const (
	ActionLogin    = "login"
	ActionRegister = "register"
)
