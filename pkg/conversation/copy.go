package conversation

// Reply keyboard labels
const (
	ProfileButton        = "👤 Профиль"
	InfoButton           = "ℹ️ Информация"
	EnableOrdersButton   = "🔔 Включить оповещения по ордерам"
	DisableOrdersButton  = "🔕 Отключить оповещения по ордерам"
	EnableAppealsButton  = "🔔 Включить оповещения по апелляциям"
	DisableAppealsButton = "🔕 Отключить оповещения по апелляциям"
	LogoutButton         = "❌ Выйти из аккаунта"
	BackButton           = "◀️ Назад"
	AdminButton          = "🔐 Админ-панель"
	BroadcastButton      = "📢 Рассылка"
	UsersButton          = "👥 Список пользователей"
	StatsButton          = "📊 Статистика"
	EditInfoButton       = "✏️ Изменить информацию"
	ConfirmSendButton    = "✅ Отправить"
	ConfirmSaveButton    = "✅ Сохранить"
)

// Inline callback data
const (
	CancelLogoutData = "cancel_logout"
	BanUserPrefix    = "ban_user_"
	UserPrefix       = "user_"
	OrderPrefix      = "order_"
)

const (
	textSessionExpired = "⚠️ *Сессия истекла*\n\nПожалуйста, авторизуйтесь снова, используя команду /start"
	textBanned         = "❌ *Ваш аккаунт был заблокирован*\n\nПо вопросам доступа к Боту можете обращаться к %s"
	textDenied         = "⛔ У вас нет прав администратора для выполнения этой команды."

	textWelcome    = "Привет, %s 👋🏻\n\nЭтот Бот поможет Трейдерам Платформы *Konvert2pay* получать оповещения об открытых ордерах."
	textPrivileged = "Привет, %s 👋🏻\n\nВы вошли как администратор без авторизации."
	textAskLogin   = "👤 Введите логин Трейдера:"
	textAskPass    = "🔢 Введите пароль:"
	textRejected   = "❌ Пользователь не найден\n\nПожалуйста, проверьте логин и попробуйте снова."
	textAuthFailed = "⚠️ Ошибка при попытке входа. Пожалуйста, попробуйте позже."
	textAuthorized = "✅ Вы успешно авторизовались."
	textMainMenu   = "Главное меню"
	textUnlocked   = "🔓 Ваш аккаунт был разблокирован. Используйте /start для продолжения"
	textCanceled   = "❌ Операция отменена."

	textOrdersOn   = "✅ Оповещения о новых ордерах успешно включены\n\nТеперь вы будете получать уведомления при создании новых платежей."
	textOrdersOff  = "📵 Оповещения о новых ордерах успешно отключены\n\nТеперь вы не будете получать уведомления при создании новых платежей."
	textAppealsOn  = "✅ Оповещения о новых апелляциях успешно включены\n\nТеперь вы будете получать уведомления при создании новых апелляций."
	textAppealsOff = "📵 Оповещения о новых апелляциях успешно отключены\n\nТеперь вы не будете получать уведомления при создании новых апелляций."

	textProfile       = "👤 *Профиль*\n\nЛогин: `%s`\nОповещения по ордерам: %s\nОповещения по апелляциям: %s"
	textEnabled       = "✅ Включены"
	textDisabled      = "❌ Отключены"
	textLogoutPrompt  = "❌ Вы действительно хотите отвязать аккаунт Трейдера от Бота?\n\nЧтобы подтвердить действие, отправьте логин пользователя в следующем сообщении."
	textLogoutCancel  = "Для отмены нажмите кнопку ниже:"
	textLogoutWrong   = "❌ Неверный логин\n\nПожалуйста, введите правильный логин, чтобы удалить связь аккаунта Трейдера с этим Ботом."
	textLoggedOut     = "👋 *Вы вышли из аккаунта*\n\nДля повторной авторизации используйте команду /start"
	textCancelButton  = "Отмена"
	textInfo          = "ℹ️ <b>Информация</b>\n\n%s\n\nПо всем вопросам обращайтесь: %s"
	textOrderDetails  = "📋 *Детали ордера*\n\nID: `%s`\nСтатус: В обработке\n\nДля получения полной информации перейдите в личный кабинет."
	textAdminMenu     = "🔐 *Админ-панель*\n\nВыберите действие:"
	textBroadcastAsk  = "📢 *Рассылка сообщений*\n\nВведите текст сообщения для рассылки всем пользователям:\n\nДля отмены нажмите кнопку Назад."
	textBroadcastView = "📢 Предпросмотр рассылки\n\n%s\n\nОтправить сообщение всем пользователям?"
	textBroadcastDone = "✅ *Рассылка завершена*\n\nОтправлено: %d\nНе отправлено: %d"
	textUsersEmpty    = "👥 *Список пользователей*\n\nПользователей не найдено."
	textUsersHeader   = "👥 *Список пользователей*\n\nВыберите пользователя для действий:"
	textUsersInline   = "Пользователи:"
	textStats         = "📊 *Статистика*\n\nВсего пользователей: %d\nАктивных пользователей: %d\nЗаблокированных пользователей: %d\nАдминистраторов: %d\nПользователей с ордерными оповещениями: %d\nПользователей с апелляционными оповещениями: %d"
	textEditInfoAsk   = "✏️ *Редактирование информационного блока*\n\nТекущий текст:\n\n%s\n\nОтправьте новый текст для информационного блока или нажмите кнопку Назад для отмены:"
	textEditInfoView  = "✏️ Предпросмотр информационного блока\n\n%s\n\nСохранить новый текст?"
	textInfoSaved     = "✅ Информационный блок обновлён"

	textUserCard    = "👤 *Пользователь*\n\nTelegram ID: `%d`\nTelegram: %s\nЛогин: `%s`\nРоль: %s\nСтатус: %s\nОповещения по ордерам: %s\nОповещения по апелляциям: %s"
	textUserActive  = "✅ Активен"
	textUserBlocked = "🚫 Заблокирован"
	textUserMissing = "⚠️ Пользователь не найден."
	textBanSelf     = "⚠️ Вы не можете заблокировать самого себя."
	textBanDone     = "🚫 Пользователь %s заблокирован."
	textUnbanDone   = "✅ Пользователь %s разблокирован."
	textBanNotice   = "🚫 Ваш аккаунт был заблокирован. По вопросам доступа к Боту можете обращаться к %s"
	textUnbanNotice = "🔓 Ваш аккаунт был разблокирован. Вы снова можете пользоваться ботом."
	textBanAction   = "Заблокировать"
	textUnbanAction = "Разблокировать"

	textNotNumber    = "❌ *Ошибка*\n\nTelegram ID должен быть числом."
	textAddUsage     = "❌ *Недостаточно аргументов*\n\nИспользование: /adduser <telegram\\_id> <tg\\_username> <platform\\_username>\n\nПример: `/adduser 123456789 @username user123`"
	textAddExists    = "⚠️ Пользователь с ID %d уже существует в базе данных."
	textAdded        = "✅ *Пользователь успешно добавлен*\n\nTelegram ID: `%d`\nTelegram Username: %s\nPlatform Username: %s"
	textDeleteUsage  = "❌ *Недостаточно аргументов*\n\nИспользование: /deleteuser <telegram\\_id>\n\nПример: `/deleteuser 123456789`"
	textNotInDB      = "⚠️ Пользователь с ID %d не найден в базе данных."
	textDeleteSelf   = "⚠️ Вы не можете удалить самого себя."
	textDeleted      = "✅ *Пользователь успешно удален*\n\nTelegram ID: `%d`"
	textPromoteUsage = "❌ *Недостаточно аргументов*\n\nИспользование: /makeadmin <telegram\\_id>\n\nПример: `/makeadmin 123456789`"
	textAlreadyAdmin = "⚠️ Пользователь с ID %d уже является администратором."
	textPromoted     = "✅ *Пользователь повышен до администратора*\n\nTelegram ID: `%d`"
	textListEmpty    = "📋 *Список пользователей пуст*"
	textListHeader   = "📋 *Список пользователей*\n\n```\n%s```"
	textAdminHelp    = "🔐 *Команды администратора*\n\n/adduser <telegram\\_id> <tg\\_username> <platform\\_username> - Добавить пользователя\n/deleteuser <telegram\\_id> - Удалить пользователя\n/makeadmin <telegram\\_id> - Повысить пользователя до администратора\n/listusers - Показать список всех пользователей\n/adminhelp - Показать эту справку\n\nПримеры:\n`/adduser 123456789 @username user123`\n`/deleteuser 123456789`\n`/makeadmin 123456789`"
)
